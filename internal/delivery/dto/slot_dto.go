package dto

import (
	"time"
)

// Response DTOs

type SlotResponse struct {
	ID         uint      `json:"id"`
	SlotNumber int       `json:"slot_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type SlotListResponse struct {
	Success bool           `json:"success"`
	Slots   []SlotResponse `json:"slots"`
}
