package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hydration-tracker/internal/model"

	"gorm.io/gorm"
)

var ErrMissingField = errors.New("capacity is required")

type WaterService struct {
	db  *gorm.DB
	now func() time.Time

	mu       sync.Mutex
	migrated bool
}

func NewWaterService(db *gorm.DB) *WaterService {
	return &WaterService{db: db, now: time.Now}
}

// Migrate creates the water_intakes table if needed. Append and List call
// it until it succeeds once, so a database that comes up after startup
// gets its table on the first request.
func (s *WaterService) Migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.migrated {
		return nil
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&model.WaterIntake{}); err != nil {
		return fmt.Errorf("migrate water_intakes: %w", err)
	}
	s.migrated = true
	return nil
}

// Append stores one record. A nil or zero capacity is rejected; a nil
// timestamp is filled with the current time.
func (s *WaterService) Append(ctx context.Context, capacity *float64, timestamp *time.Time) (*model.WaterIntake, error) {
	if capacity == nil || *capacity == 0 {
		return nil, ErrMissingField
	}
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}

	rec := model.WaterIntake{Capacity: *capacity, Timestamp: s.now()}
	if timestamp != nil {
		rec.Timestamp = *timestamp
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("insert water intake: %w", err)
	}
	return &rec, nil
}

// List returns every record, newest timestamp first.
func (s *WaterService) List(ctx context.Context) ([]model.WaterIntake, error) {
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	var recs []model.WaterIntake
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("query water intakes: %w", err)
	}
	return recs, nil
}
