package service

import (
	"context"
	"encoding/json"
	"time"

	"parking-slot-backend/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key holding the serialized slot board
	slotBoardKey = "slots:board"

	// How long a cached board stays valid without invalidation
	slotBoardTTL = 30 * time.Second

	// Timeout for individual Redis operations
	cacheOpTimeout = 2 * time.Second
)

// SlotCacheService mirrors the slot board into Redis so the frequently polled
// slot listing does not hit the database on every request. The database stays
// the source of truth: the cache is only ever filled from a fresh read and
// invalidated on every booking write.
//
// A nil *SlotCacheService is valid and disables caching, so callers never
// need to branch on whether Redis is configured.
type SlotCacheService struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewSlotCacheService(client *redis.Client, log *logrus.Logger) *SlotCacheService {
	return &SlotCacheService{
		client: client,
		log:    log,
	}
}

// GetBoard returns the cached slot board, or nil on miss or any Redis error.
func (s *SlotCacheService) GetBoard(ctx context.Context) []entity.Slot {
	if s == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, slotBoardKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read slot board cache: %+v", err)
		}
		return nil
	}

	var slots []entity.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		s.log.Warnf("Corrupt slot board cache, dropping: %+v", err)
		s.Invalidate(context.Background())
		return nil
	}
	return slots
}

// SetBoard stores a freshly loaded slot board. Errors are logged, never fatal.
func (s *SlotCacheService) SetBoard(ctx context.Context, slots []entity.Slot) {
	if s == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		s.log.Warnf("Failed to serialize slot board: %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	if err := s.client.Set(ctx, slotBoardKey, raw, slotBoardTTL).Err(); err != nil {
		s.log.Warnf("Failed to write slot board cache: %+v", err)
	}
}

// Invalidate drops the cached board. Called after every write that flips a
// slot status.
func (s *SlotCacheService) Invalidate(ctx context.Context) {
	if s == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	if err := s.client.Del(ctx, slotBoardKey).Err(); err != nil {
		s.log.Warnf("Failed to invalidate slot board cache: %+v", err)
	}
}
