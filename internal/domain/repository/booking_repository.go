package repository

import (
	"parking-slot-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uint) (*entity.Booking, error)
	FindFiltered(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error)
	// CancelBooking atomically cancels a booking only if it is not already
	// cancelled. Returns affected rows: 1 = success, 0 = already cancelled.
	CancelBooking(db *gorm.DB, id uint) (int64, error)
}
