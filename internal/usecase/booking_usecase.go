package usecase

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"parking-slot-backend/internal/converter"
	"parking-slot-backend/internal/delivery/dto"
	"parking-slot-backend/internal/domain/entity"
	"parking-slot-backend/internal/domain/repository"
	"parking-slot-backend/internal/infrastructure/storage"
	"parking-slot-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound            = errors.New("slot not found")
	ErrSlotAlreadyBooked       = errors.New("slot is already booked")
	ErrNoAvailableSlots        = errors.New("no available slots at the moment")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrInvalidAadhaar          = errors.New("aadhaar number must be exactly 12 digits")
	ErrInvalidBookingDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrNoImage                 = errors.New("no image file selected")
	ErrInvalidFileType         = errors.New("invalid file type, allowed: PNG, JPG, JPEG, GIF, WEBP")
)

// allowedImageExtensions are the file types accepted for slot images
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ValidateImageFilename checks that an uploaded slot image has a usable name
// and an allowed extension (case-insensitive)
func ValidateImageFilename(name string) error {
	if name == "" {
		return ErrNoImage
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(name))] {
		return ErrInvalidFileType
	}
	return nil
}

type BookingUsecase interface {
	GetBookings(ctx context.Context, filter *entity.BookingFilter) (*dto.BookingListResponse, error)
	GetBooking(ctx context.Context, bookingID uint) (*dto.BookingResponse, error)
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID uint) (*dto.BookingResponse, error)
	AutoAllocate(ctx context.Context, req *dto.AutoAllocateRequest, imageName string, image io.Reader) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	slotRepo     repository.SlotRepository
	imageStorage storage.ImageStorage
	slotCache    *service.SlotCacheService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	slotRepo repository.SlotRepository,
	imageStorage storage.ImageStorage,
	slotCache *service.SlotCacheService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		imageStorage: imageStorage,
		slotCache:    slotCache,
	}
}

// GetBookings returns all bookings matching the optional status/email filters,
// newest first.
func (u *bookingUsecase) GetBookings(ctx context.Context, filter *entity.BookingFilter) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindFiltered(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Success:  true,
		Bookings: converter.BookingsToResponses(bookings),
	}, nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, bookingID uint) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %d: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	return converter.BookingToResponse(booking), nil
}

// CreateBooking reserves a specific slot for a customer.
//
// Flow:
// 1. Normalize and validate the Aadhaar number
// 2. Resolve the slot and reject if already booked
// 3. Parse the booking date (strict YYYY-MM-DD)
// 4. In one transaction: conditionally flip the slot to booked and insert
//    the booking. The conditional flip fails with zero affected rows when a
//    concurrent request took the slot first, so both requests can never commit.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	aadhaar, ok := entity.NormalizeAadhaar(req.AadhaarNumber)
	if !ok {
		return nil, ErrInvalidAadhaar
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.IsBooked() {
		return nil, ErrSlotAlreadyBooked
	}

	bookingDate, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return nil, ErrInvalidBookingDate
	}

	booking := &entity.Booking{
		SlotID:        slot.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		VehicleNumber: req.VehicleNumber,
		AadhaarNumber: aadhaar,
		BookingDate:   bookingDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ImagePath:     req.ImagePath,
		Status:        entity.BookingStatusActive,
	}

	if err := u.bookSlot(ctx, slot, booking); err != nil {
		return nil, err
	}

	u.slotCache.Invalidate(ctx)
	u.log.Infof("Booking created: id=%d, slot=%d", booking.ID, slot.SlotNumber)

	booking.Slot = *slot
	return converter.BookingToResponse(booking), nil
}

// CancelBooking transitions a booking to cancelled and releases its slot.
// The transition is one-way; cancelling twice fails. A slot that no longer
// exists is tolerated silently.
func (u *bookingUsecase) CancelBooking(ctx context.Context, bookingID uint) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %d: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.IsCancelled() {
		return nil, ErrBookingAlreadyCancelled
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.bookingRepo.CancelBooking(tx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to cancel booking %d: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBookingAlreadyCancelled
	}

	if err := u.slotRepo.UpdateStatus(tx, booking.SlotID, entity.SlotStatusAvailable); err != nil {
		u.log.Warnf("Failed to release slot %d: %+v", booking.SlotID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit cancellation: %+v", err)
		return nil, err
	}

	u.slotCache.Invalidate(ctx)
	u.log.Infof("Booking cancelled: id=%d, slot_id=%d", bookingID, booking.SlotID)

	booking.Status = entity.BookingStatusCancelled
	return converter.BookingToResponse(booking), nil
}

// AutoAllocate creates a booking on the lowest-numbered available slot,
// persisting the uploaded slot image first.
//
// The image write happens outside the transaction: a later database failure
// leaves an orphaned file behind, which is accepted.
func (u *bookingUsecase) AutoAllocate(ctx context.Context, req *dto.AutoAllocateRequest, imageName string, image io.Reader) (*dto.BookingResponse, error) {
	if image == nil {
		return nil, ErrNoImage
	}
	if err := ValidateImageFilename(imageName); err != nil {
		return nil, err
	}

	aadhaar, ok := entity.NormalizeAadhaar(req.AadhaarNumber)
	if !ok {
		return nil, ErrInvalidAadhaar
	}

	slot, err := u.slotRepo.FindFirstAvailable(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find available slot: %+v", err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrNoAvailableSlots
	}

	imagePath, err := u.imageStorage.Save(imageName, image)
	if err != nil {
		u.log.Errorf("Failed to store slot image: %+v", err)
		return nil, err
	}

	bookingDate, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return nil, ErrInvalidBookingDate
	}

	booking := &entity.Booking{
		SlotID:        slot.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		VehicleNumber: req.VehicleNumber,
		AadhaarNumber: aadhaar,
		BookingDate:   bookingDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ImagePath:     imagePath,
		Status:        entity.BookingStatusActive,
	}

	if err := u.bookSlot(ctx, slot, booking); err != nil {
		return nil, err
	}

	u.slotCache.Invalidate(ctx)
	u.log.Infof("Booking auto-allocated: id=%d, slot=%d, image=%s", booking.ID, slot.SlotNumber, imagePath)

	booking.Slot = *slot
	return converter.BookingToResponse(booking), nil
}

// bookSlot performs the paired state transition: slot -> booked and booking
// inserted as active, committed together or not at all.
func (u *bookingUsecase) bookSlot(ctx context.Context, slot *entity.Slot, booking *entity.Booking) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.slotRepo.UpdateStatusIf(tx, slot.ID, entity.SlotStatusAvailable, entity.SlotStatusBooked)
	if err != nil {
		u.log.Warnf("Failed to flip slot %d: %+v", slot.ID, err)
		return err
	}
	if rows == 0 {
		// Another request won the slot between our read and this update
		return ErrSlotAlreadyBooked
	}

	if err := u.bookingRepo.Create(tx, booking); err != nil {
		u.log.Warnf("Failed to insert booking: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit booking: %+v", err)
		return err
	}

	slot.Status = entity.SlotStatusBooked
	return nil
}

// parseBookingDate parses a strict YYYY-MM-DD date
func parseBookingDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
