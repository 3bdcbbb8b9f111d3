package dto

import (
	"time"
)

// Request DTOs

type CreateBookingRequest struct {
	SlotID        uint   `json:"slot_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	VehicleNumber string `json:"vehicle_number"`
	AadhaarNumber string `json:"aadhaar_number" validate:"required"`
	BookingDate   string `json:"booking_date" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
	ImagePath     string `json:"image_path"`
}

// AutoAllocateRequest carries the multipart form fields of an auto-allocate
// request. The slot is chosen by the system and the image arrives as a file
// part, so neither appears here.
type AutoAllocateRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	VehicleNumber string `json:"vehicle_number"`
	AadhaarNumber string `json:"aadhaar_number" validate:"required"`
	BookingDate   string `json:"booking_date" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
}

// Response DTOs

type BookingResponse struct {
	ID            uint      `json:"id"`
	SlotID        uint      `json:"slot_id"`
	SlotNumber    int       `json:"slot_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	VehicleNumber string    `json:"vehicle_number"`
	AadhaarNumber string    `json:"aadhaar_number"`
	BookingDate   string    `json:"booking_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	ImagePath     string    `json:"image_path"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingListResponse struct {
	Success  bool              `json:"success"`
	Bookings []BookingResponse `json:"bookings"`
}

type BookingDetailResponse struct {
	Success bool             `json:"success"`
	Booking *BookingResponse `json:"booking"`
}

type BookingResultResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Booking *BookingResponse `json:"booking"`
}
