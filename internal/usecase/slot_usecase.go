package usecase

import (
	"context"

	"parking-slot-backend/internal/converter"
	"parking-slot-backend/internal/delivery/dto"
	"parking-slot-backend/internal/domain/repository"
	"parking-slot-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SlotUsecase interface {
	GetSlots(ctx context.Context) (*dto.SlotListResponse, error)
}

type slotUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	slotRepo  repository.SlotRepository
	slotCache *service.SlotCacheService
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.SlotRepository,
	slotCache *service.SlotCacheService,
) SlotUsecase {
	return &slotUsecase{
		db:        db,
		log:       log,
		slotRepo:  slotRepo,
		slotCache: slotCache,
	}
}

// GetSlots returns the full slot board ordered by slot number, served from
// the cache when warm.
func (u *slotUsecase) GetSlots(ctx context.Context) (*dto.SlotListResponse, error) {
	if cached := u.slotCache.GetBoard(ctx); cached != nil {
		return &dto.SlotListResponse{
			Success: true,
			Slots:   converter.SlotsToResponses(cached),
		}, nil
	}

	slots, err := u.slotRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find slots: %+v", err)
		return nil, err
	}

	u.slotCache.SetBoard(ctx, slots)

	return &dto.SlotListResponse{
		Success: true,
		Slots:   converter.SlotsToResponses(slots),
	}, nil
}
