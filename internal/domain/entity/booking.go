package entity

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// AadhaarLength is the number of digits in a valid Aadhaar number
const AadhaarLength = 12

// Booking represents a customer reservation of one parking slot
type Booking struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	SlotID        uint          `gorm:"not null;index" json:"slot_id"`
	CustomerName  string        `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerEmail string        `gorm:"type:varchar(100);not null;index" json:"customer_email"`
	CustomerPhone string        `gorm:"type:varchar(20);not null" json:"customer_phone"`
	VehicleNumber string        `gorm:"type:varchar(20)" json:"vehicle_number"`
	AadhaarNumber string        `gorm:"type:varchar(12);not null" json:"aadhaar_number"`
	BookingDate   time.Time     `gorm:"type:date;not null" json:"booking_date"`
	StartTime     string        `gorm:"type:varchar(10);not null" json:"start_time"`
	EndTime       string        `gorm:"type:varchar(10);not null" json:"end_time"`
	ImagePath     string        `gorm:"type:varchar(255)" json:"image_path"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Slot Slot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsActive checks if booking is in active status
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// IsCancelled checks if booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// NormalizeAadhaar strips spaces and hyphens from an Aadhaar number and
// reports whether the remainder is exactly 12 decimal digits.
func NormalizeAadhaar(raw string) (string, bool) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	if len(cleaned) != AadhaarLength {
		return "", false
	}
	for _, c := range cleaned {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return cleaned, true
}
