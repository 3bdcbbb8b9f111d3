package database

import (
	"fmt"

	"parking-slot-backend/config"
	"parking-slot-backend/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the database configured by cfg.Driver.
func NewConnection(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Infof("Successfully connected to %s database", cfg.Driver)

	return db, nil
}

// Migrate creates the slots and bookings tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Slot{}, &entity.Booking{})
}

// SeedSlots provisions slots numbered 1..slotCount. Existing slots are never
// renumbered or removed; if fewer than slotCount exist, the missing higher
// numbers are added.
func SeedSlots(db *gorm.DB, slotCount int) error {
	var existing int64
	if err := db.Model(&entity.Slot{}).Count(&existing).Error; err != nil {
		return err
	}

	if int(existing) >= slotCount {
		logrus.Infof("%d slots already exist; no changes made", existing)
		return nil
	}

	slots := make([]entity.Slot, 0, slotCount-int(existing))
	for i := int(existing) + 1; i <= slotCount; i++ {
		slots = append(slots, entity.Slot{
			SlotNumber: i,
			Status:     entity.SlotStatusAvailable,
		})
	}
	if err := db.Create(&slots).Error; err != nil {
		return err
	}

	logrus.Infof("Created %d parking slots (now %d total)", len(slots), slotCount)
	return nil
}
