package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is a bilingual job listing posted by a local business.
type Job struct {
	ID              string `gorm:"type:text;primaryKey"`
	PositionSq      string `gorm:"column:position_sq;not null"`
	PositionEn      string `gorm:"column:position_en;not null"`
	DescriptionSq   string `gorm:"column:description_sq;not null"`
	DescriptionEn   string `gorm:"column:description_en;not null"`
	LocationSq      string `gorm:"column:location_sq;not null"`
	LocationEn      string `gorm:"column:location_en;not null"`
	BusinessName    string `gorm:"column:business_name;not null"`
	ApplicationLink string `gorm:"column:application_link"`
	Views           uint64 `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
