package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"parking-slot-backend/internal/delivery/dto"
	"parking-slot-backend/internal/domain/entity"
	"parking-slot-backend/internal/usecase"
	"parking-slot-backend/pkg/response"
	"parking-slot-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
	maxUploadBytes int64
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
	}
}

// GetBookings returns all bookings, optionally filtered by status and email
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	filter := &entity.BookingFilter{
		Status: r.URL.Query().Get("status"),
		Email:  r.URL.Query().Get("email"),
	}

	bookings, err := h.bookingUsecase.GetBookings(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.JSON(w, http.StatusOK, bookings)
}

// GetBooking returns a specific booking by ID
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(r)
	if !ok {
		response.NotFound(w, "Booking not found")
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), bookingID)
	if err != nil {
		if err == usecase.ErrBookingNotFound {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalServerError(w, "Failed to get booking")
		return
	}

	response.JSON(w, http.StatusOK, dto.BookingDetailResponse{
		Success: true,
		Booking: booking,
	})
}

// CreateBooking creates a new booking on a specific slot
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FirstError(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.BookingResultResponse{
		Success: true,
		Message: "Booking created successfully",
		Booking: booking,
	})
}

// CancelBooking cancels an active booking and frees its slot
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseBookingID(r)
	if !ok {
		response.NotFound(w, "Booking not found")
		return
	}

	booking, err := h.bookingUsecase.CancelBooking(r.Context(), bookingID)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.BookingResultResponse{
		Success: true,
		Message: "Booking cancelled successfully",
		Booking: booking,
	})
}

// AutoAllocate books the lowest-numbered available slot from a multipart
// request carrying the customer fields and a slot image
func (h *BookingHandler) AutoAllocate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		response.BadRequest(w, "No image file provided")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "No image file provided")
		return
	}
	defer file.Close()

	// File checks come before field validation, mirroring the upload flow:
	// a request with a bad file and a missing field reports the file error
	if err := usecase.ValidateImageFilename(header.Filename); err != nil {
		h.writeBookingError(w, err)
		return
	}

	req := dto.AutoAllocateRequest{
		CustomerName:  r.FormValue("customer_name"),
		CustomerEmail: r.FormValue("customer_email"),
		CustomerPhone: r.FormValue("customer_phone"),
		VehicleNumber: r.FormValue("vehicle_number"),
		AadhaarNumber: r.FormValue("aadhaar_number"),
		BookingDate:   r.FormValue("booking_date"),
		StartTime:     r.FormValue("start_time"),
		EndTime:       r.FormValue("end_time"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FirstError(err))
		return
	}

	booking, err := h.bookingUsecase.AutoAllocate(r.Context(), &req, header.Filename, file)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.BookingResultResponse{
		Success: true,
		Message: fmt.Sprintf("Slot #%d allocated automatically based on your image", booking.SlotNumber),
		Booking: booking,
	})
}

// writeBookingError maps usecase errors to HTTP responses
func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrSlotNotFound:
		response.NotFound(w, "Slot not found")
	case usecase.ErrBookingNotFound:
		response.NotFound(w, "Booking not found")
	case usecase.ErrSlotAlreadyBooked:
		response.BadRequest(w, "Slot is already booked")
	case usecase.ErrBookingAlreadyCancelled:
		response.BadRequest(w, "Booking is already cancelled")
	case usecase.ErrNoAvailableSlots:
		response.BadRequest(w, "No available slots at the moment")
	case usecase.ErrInvalidAadhaar:
		response.BadRequest(w, "Aadhaar number must be exactly 12 digits")
	case usecase.ErrInvalidBookingDate:
		response.BadRequest(w, "Invalid date format. Use YYYY-MM-DD")
	case usecase.ErrNoImage:
		response.BadRequest(w, "No image file selected")
	case usecase.ErrInvalidFileType:
		response.BadRequest(w, "Invalid file type. Allowed: PNG, JPG, JPEG, GIF, WEBP")
	default:
		response.InternalServerError(w, "Failed to process booking")
	}
}

func parseBookingID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
