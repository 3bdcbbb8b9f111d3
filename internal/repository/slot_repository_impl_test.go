package repository_test

import (
	"testing"

	"parking-slot-backend/internal/domain/entity"
	"parking-slot-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&entity.Slot{}, &entity.Booking{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestFindFirstAvailablePicksLowestNumber(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewSlotRepository()

	db.Create(&entity.Slot{SlotNumber: 1, Status: entity.SlotStatusBooked})
	db.Create(&entity.Slot{SlotNumber: 3, Status: entity.SlotStatusAvailable})
	db.Create(&entity.Slot{SlotNumber: 2, Status: entity.SlotStatusAvailable})

	slot, err := repo.FindFirstAvailable(db)
	assert.NoError(t, err)
	assert.NotNil(t, slot)
	assert.Equal(t, 2, slot.SlotNumber)
}

func TestFindFirstAvailableNoneLeft(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewSlotRepository()

	db.Create(&entity.Slot{SlotNumber: 1, Status: entity.SlotStatusBooked})

	slot, err := repo.FindFirstAvailable(db)
	assert.NoError(t, err)
	assert.Nil(t, slot)
}

func TestFindAllOrderedBySlotNumber(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewSlotRepository()

	db.Create(&entity.Slot{SlotNumber: 2, Status: entity.SlotStatusAvailable})
	db.Create(&entity.Slot{SlotNumber: 1, Status: entity.SlotStatusAvailable})
	db.Create(&entity.Slot{SlotNumber: 3, Status: entity.SlotStatusBooked})

	slots, err := repo.FindAll(db)
	assert.NoError(t, err)
	assert.Len(t, slots, 3)
	assert.Equal(t, 1, slots[0].SlotNumber)
	assert.Equal(t, 2, slots[1].SlotNumber)
	assert.Equal(t, 3, slots[2].SlotNumber)
}

func TestUpdateStatusIfConditionalFlip(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewSlotRepository()

	slot := entity.Slot{SlotNumber: 1, Status: entity.SlotStatusAvailable}
	db.Create(&slot)

	rows, err := repo.UpdateStatusIf(db, slot.ID, entity.SlotStatusAvailable, entity.SlotStatusBooked)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// Second flip from "available" must not match anything
	rows, err = repo.UpdateStatusIf(db, slot.ID, entity.SlotStatusAvailable, entity.SlotStatusBooked)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	found, err := repo.FindByID(db, slot.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.SlotStatusBooked, found.Status)
}

func TestCancelBookingConditional(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewBookingRepository()

	slot := entity.Slot{SlotNumber: 1, Status: entity.SlotStatusBooked}
	db.Create(&slot)
	booking := entity.Booking{
		SlotID:        slot.ID,
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
		AadhaarNumber: "123456789012",
		StartTime:     "10:00",
		EndTime:       "12:00",
		Status:        entity.BookingStatusActive,
	}
	db.Create(&booking)

	rows, err := repo.CancelBooking(db, booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.CancelBooking(db, booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestFindFilteredByStatusAndEmail(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := repository.NewBookingRepository()

	slot := entity.Slot{SlotNumber: 1, Status: entity.SlotStatusBooked}
	db.Create(&slot)

	db.Create(&entity.Booking{
		SlotID: slot.ID, CustomerName: "Asha", CustomerEmail: "asha@example.com",
		CustomerPhone: "1", AadhaarNumber: "123456789012",
		StartTime: "09:00", EndTime: "10:00", Status: entity.BookingStatusActive,
	})
	db.Create(&entity.Booking{
		SlotID: slot.ID, CustomerName: "Ravi", CustomerEmail: "ravi@example.com",
		CustomerPhone: "2", AadhaarNumber: "123456789012",
		StartTime: "10:00", EndTime: "11:00", Status: entity.BookingStatusCancelled,
	})

	active, err := repo.FindFiltered(db, &entity.BookingFilter{Status: "active"})
	assert.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "asha@example.com", active[0].CustomerEmail)

	byEmail, err := repo.FindFiltered(db, &entity.BookingFilter{Email: "ravi@example.com"})
	assert.NoError(t, err)
	assert.Len(t, byEmail, 1)
	assert.Equal(t, entity.BookingStatusCancelled, byEmail[0].Status)

	all, err := repo.FindFiltered(db, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
