package repository

import (
	"errors"

	"parking-slot-backend/internal/domain/entity"
	domainRepo "parking-slot-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) Create(db *gorm.DB, slot *entity.Slot) error {
	return db.Create(slot).Error
}

func (r *slotRepository) FindAll(db *gorm.DB) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Order("slot_number").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) FindByID(db *gorm.DB, id uint) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindFirstAvailable(db *gorm.DB) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("status = ?", entity.SlotStatusAvailable).
		Order("slot_number").
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Slot{}).Count(&count).Error
	return count, err
}

// UpdateStatusIf performs a conditional status flip. Zero affected rows means
// another request changed the slot first, which callers treat as a conflict.
func (r *slotRepository) UpdateStatusIf(db *gorm.DB, id uint, from, to entity.SlotStatus) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) UpdateStatus(db *gorm.DB, id uint, status entity.SlotStatus) error {
	return db.Model(&entity.Slot{}).
		Where("id = ?", id).
		Update("status", status).Error
}
