package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WaterIntake is one record appended through the remote API.
type WaterIntake struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Capacity  float64   `gorm:"not null" json:"capacity"` // ml
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (WaterIntake) TableName() string { return "water_intakes" }

func (w *WaterIntake) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		w.ID = id.String()
	}
	return nil
}
