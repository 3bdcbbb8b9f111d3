package converter

import (
	"parking-slot-backend/internal/delivery/dto"
	"parking-slot-backend/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:            booking.ID,
		SlotID:        booking.SlotID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		VehicleNumber: booking.VehicleNumber,
		AadhaarNumber: booking.AadhaarNumber,
		BookingDate:   booking.BookingDate.Format("2006-01-02"),
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		ImagePath:     booking.ImagePath,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}

	// Include slot number if the slot was preloaded
	if booking.Slot.ID != 0 {
		response.SlotNumber = booking.Slot.SlotNumber
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
