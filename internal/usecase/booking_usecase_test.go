package usecase_test

import (
	"context"
	"strings"
	"testing"

	"parking-slot-backend/internal/delivery/dto"
	"parking-slot-backend/internal/domain/entity"
	"parking-slot-backend/internal/infrastructure/storage"
	"parking-slot-backend/internal/repository"
	"parking-slot-backend/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBookingTest(t *testing.T) (*gorm.DB, usecase.BookingUsecase) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&entity.Slot{}, &entity.Booking{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	imageStorage, err := storage.NewLocalImageStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create image storage: %v", err)
	}

	log := logrus.New()
	uc := usecase.NewBookingUsecase(
		db, log,
		repository.NewBookingRepository(),
		repository.NewSlotRepository(),
		imageStorage,
		nil,
	)
	return db, uc
}

func seedSlot(t *testing.T, db *gorm.DB, number int, status entity.SlotStatus) entity.Slot {
	slot := entity.Slot{SlotNumber: number, Status: status}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("failed to seed slot: %v", err)
	}
	return slot
}

func validCreateRequest(slotID uint) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		SlotID:        slotID,
		CustomerName:  "Asha Verma",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
		VehicleNumber: "KA01AB1234",
		AadhaarNumber: "1234-5678-9012",
		BookingDate:   "2026-09-01",
		StartTime:     "10:00",
		EndTime:       "12:00",
	}
}

func TestCreateBookingFlipsSlotAndActivatesBooking(t *testing.T) {
	db, uc := setupBookingTest(t)
	slot := seedSlot(t, db, 1, entity.SlotStatusAvailable)

	booking, err := uc.CreateBooking(context.Background(), validCreateRequest(slot.ID))
	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, "active", booking.Status)
	assert.Equal(t, slot.ID, booking.SlotID)
	assert.Equal(t, 1, booking.SlotNumber)

	var stored entity.Slot
	db.First(&stored, slot.ID)
	assert.Equal(t, entity.SlotStatusBooked, stored.Status)
}

func TestCreateBookingRoundTripFields(t *testing.T) {
	db, uc := setupBookingTest(t)
	slot := seedSlot(t, db, 1, entity.SlotStatusAvailable)

	req := validCreateRequest(slot.ID)
	booking, err := uc.CreateBooking(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, req.CustomerName, booking.CustomerName)
	assert.Equal(t, req.CustomerEmail, booking.CustomerEmail)
	assert.Equal(t, req.CustomerPhone, booking.CustomerPhone)
	assert.Equal(t, req.VehicleNumber, booking.VehicleNumber)
	assert.Equal(t, req.BookingDate, booking.BookingDate)
	assert.Equal(t, req.StartTime, booking.StartTime)
	assert.Equal(t, req.EndTime, booking.EndTime)
	// Aadhaar comes back normalized, status is forced to active
	assert.Equal(t, "123456789012", booking.AadhaarNumber)
	assert.Equal(t, "active", booking.Status)
}

func TestCreateBookingOnBookedSlotFails(t *testing.T) {
	db, uc := setupBookingTest(t)
	slot := seedSlot(t, db, 1, entity.SlotStatusBooked)

	booking, err := uc.CreateBooking(context.Background(), validCreateRequest(slot.ID))
	assert.ErrorIs(t, err, usecase.ErrSlotAlreadyBooked)
	assert.Nil(t, booking)

	// No booking row was written
	var count int64
	db.Model(&entity.Booking{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var stored entity.Slot
	db.First(&stored, slot.ID)
	assert.Equal(t, entity.SlotStatusBooked, stored.Status)
}

func TestCreateBookingUnknownSlot(t *testing.T) {
	_, uc := setupBookingTest(t)

	booking, err := uc.CreateBooking(context.Background(), validCreateRequest(999))
	assert.ErrorIs(t, err, usecase.ErrSlotNotFound)
	assert.Nil(t, booking)
}

func TestCreateBookingInvalidAadhaar(t *testing.T) {
	db, uc := setupBookingTest(t)
	slot := seedSlot(t, db, 1, entity.SlotStatusAvailable)

	req := validCreateRequest(slot.ID)
	req.AadhaarNumber = "12345"
	booking, err := uc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, usecase.ErrInvalidAadhaar)
	assert.Nil(t, booking)

	// Slot untouched
	var stored entity.Slot
	db.First(&stored, slot.ID)
	assert.Equal(t, entity.SlotStatusAvailable, stored.Status)
}

func TestCreateBookingInvalidDate(t *testing.T) {
	db, uc := setupBookingTest(t)
	slot := seedSlot(t, db, 1, entity.SlotStatusAvailable)

	req := validCreateRequest(slot.ID)
	req.BookingDate = "01-09-2026"
	booking, err := uc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, usecase.ErrInvalidBookingDate)
	assert.Nil(t, booking)
}

func TestCancelBookingReleasesSlotOnce(t *testing.T) {
	db, uc := setupBookingTest(t)
	slot := seedSlot(t, db, 1, entity.SlotStatusAvailable)

	created, err := uc.CreateBooking(context.Background(), validCreateRequest(slot.ID))
	assert.NoError(t, err)

	cancelled, err := uc.CancelBooking(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	var stored entity.Slot
	db.First(&stored, slot.ID)
	assert.Equal(t, entity.SlotStatusAvailable, stored.Status)

	// Cancelling again is a one-way transition violation
	_, err = uc.CancelBooking(context.Background(), created.ID)
	assert.ErrorIs(t, err, usecase.ErrBookingAlreadyCancelled)
}

func TestCancelBookingNotFound(t *testing.T) {
	_, uc := setupBookingTest(t)

	_, err := uc.CancelBooking(context.Background(), 42)
	assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
}

func validAutoAllocateRequest() *dto.AutoAllocateRequest {
	return &dto.AutoAllocateRequest{
		CustomerName:  "Ravi Kumar",
		CustomerEmail: "ravi@example.com",
		CustomerPhone: "9123456780",
		AadhaarNumber: "123456789012",
		BookingDate:   "2026-09-02",
		StartTime:     "08:00",
		EndTime:       "09:30",
	}
}

func TestAutoAllocatePicksLowestAvailableSlot(t *testing.T) {
	db, uc := setupBookingTest(t)
	seedSlot(t, db, 1, entity.SlotStatusBooked)
	seedSlot(t, db, 2, entity.SlotStatusAvailable)
	seedSlot(t, db, 3, entity.SlotStatusAvailable)

	booking, err := uc.AutoAllocate(context.Background(), validAutoAllocateRequest(), "car.jpg", strings.NewReader("jpeg-bytes"))
	assert.NoError(t, err)
	assert.Equal(t, 2, booking.SlotNumber)
	assert.Equal(t, "active", booking.Status)
	assert.NotEmpty(t, booking.ImagePath)

	var stored entity.Slot
	db.Where("slot_number = ?", 2).First(&stored)
	assert.Equal(t, entity.SlotStatusBooked, stored.Status)
}

func TestAutoAllocateNoAvailableSlots(t *testing.T) {
	db, uc := setupBookingTest(t)
	seedSlot(t, db, 1, entity.SlotStatusBooked)

	booking, err := uc.AutoAllocate(context.Background(), validAutoAllocateRequest(), "car.jpg", strings.NewReader("jpeg-bytes"))
	assert.ErrorIs(t, err, usecase.ErrNoAvailableSlots)
	assert.Nil(t, booking)

	// No orphaned booking, no changed slot
	var count int64
	db.Model(&entity.Booking{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAutoAllocateRejectsBadFileType(t *testing.T) {
	db, uc := setupBookingTest(t)
	seedSlot(t, db, 1, entity.SlotStatusAvailable)

	booking, err := uc.AutoAllocate(context.Background(), validAutoAllocateRequest(), "malware.exe", strings.NewReader("nope"))
	assert.ErrorIs(t, err, usecase.ErrInvalidFileType)
	assert.Nil(t, booking)
}

func TestAutoAllocateAcceptsUppercaseExtension(t *testing.T) {
	db, uc := setupBookingTest(t)
	seedSlot(t, db, 1, entity.SlotStatusAvailable)

	booking, err := uc.AutoAllocate(context.Background(), validAutoAllocateRequest(), "CAR.JPG", strings.NewReader("jpeg-bytes"))
	assert.NoError(t, err)
	assert.Equal(t, 1, booking.SlotNumber)
}

func TestAutoAllocateRejectsMissingImage(t *testing.T) {
	db, uc := setupBookingTest(t)
	seedSlot(t, db, 1, entity.SlotStatusAvailable)

	booking, err := uc.AutoAllocate(context.Background(), validAutoAllocateRequest(), "", nil)
	assert.ErrorIs(t, err, usecase.ErrNoImage)
	assert.Nil(t, booking)
}

func TestGetBookingsNewestFirst(t *testing.T) {
	db, uc := setupBookingTest(t)
	slotA := seedSlot(t, db, 1, entity.SlotStatusAvailable)
	slotB := seedSlot(t, db, 2, entity.SlotStatusAvailable)

	first, err := uc.CreateBooking(context.Background(), validCreateRequest(slotA.ID))
	assert.NoError(t, err)
	second, err := uc.CreateBooking(context.Background(), validCreateRequest(slotB.ID))
	assert.NoError(t, err)

	// Force distinct creation timestamps for the ordering check
	db.Model(&entity.Booking{}).Where("id = ?", first.ID).
		Update("created_at", gorm.Expr("datetime(created_at, '-1 minute')"))

	list, err := uc.GetBookings(context.Background(), nil)
	assert.NoError(t, err)
	assert.Len(t, list.Bookings, 2)
	assert.Equal(t, second.ID, list.Bookings[0].ID)
	assert.Equal(t, first.ID, list.Bookings[1].ID)
}

func TestGetBookingNotFound(t *testing.T) {
	_, uc := setupBookingTest(t)

	booking, err := uc.GetBooking(context.Background(), 7)
	assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	assert.Nil(t, booking)
}
