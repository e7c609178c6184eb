package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Myth is a debunked claim with its bilingual explanation.
type Myth struct {
	ID            string `gorm:"type:text;primaryKey"`
	ClaimSq       string `gorm:"column:claim_sq;not null"`
	ClaimEn       string `gorm:"column:claim_en;not null"`
	ExplanationSq string `gorm:"column:explanation_sq;not null"`
	ExplanationEn string `gorm:"column:explanation_en;not null"`
	Views         uint64 `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (m *Myth) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
