package handler

import (
	"net/http"

	"parking-slot-backend/internal/usecase"
	"parking-slot-backend/pkg/response"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
	}
}

// GetSlots returns all parking slots with their availability status
func (h *SlotHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slotUsecase.GetSlots(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get slots")
		return
	}

	response.JSON(w, http.StatusOK, slots)
}
