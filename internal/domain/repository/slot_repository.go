package repository

import (
	"parking-slot-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type SlotRepository interface {
	Create(db *gorm.DB, slot *entity.Slot) error
	FindAll(db *gorm.DB) ([]entity.Slot, error)
	FindByID(db *gorm.DB, id uint) (*entity.Slot, error)
	FindFirstAvailable(db *gorm.DB) (*entity.Slot, error)
	Count(db *gorm.DB) (int64, error)
	// UpdateStatusIf flips the slot status only when it still has the
	// expected current status. Returns affected rows: 1 = success,
	// 0 = the slot was concurrently flipped by another request.
	UpdateStatusIf(db *gorm.DB, id uint, from, to entity.SlotStatus) (int64, error)
	UpdateStatus(db *gorm.DB, id uint, status entity.SlotStatus) error
}
