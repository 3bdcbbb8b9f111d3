package entity

import (
	"time"
)

// SlotStatus represents the occupancy status of a parking slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

// Slot represents a numbered parking slot
type Slot struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	SlotNumber int        `gorm:"uniqueIndex;not null" json:"slot_number"`
	Status     SlotStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Bookings []Booking `gorm:"foreignKey:SlotID" json:"bookings,omitempty"`
}

func (Slot) TableName() string {
	return "slots"
}

// IsAvailable checks if the slot can accept a new booking
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// IsBooked checks if the slot is currently occupied by an active booking
func (s *Slot) IsBooked() bool {
	return s.Status == SlotStatusBooked
}
