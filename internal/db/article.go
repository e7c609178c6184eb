package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is a bilingual health article. Every user-facing text field
// exists in an Albanian (sq) and an English (en) variant.
type Article struct {
	ID         string `gorm:"type:text;primaryKey"`
	TitleSq    string `gorm:"column:title_sq;not null"`
	TitleEn    string `gorm:"column:title_en;not null"`
	ContentSq  string `gorm:"column:content_sq;not null"`
	ContentEn  string `gorm:"column:content_en;not null"`
	CategorySq string `gorm:"column:category_sq;not null"`
	CategoryEn string `gorm:"column:category_en;not null"`
	ImageURL   string `gorm:"column:image_url"`
	Views      uint64 `gorm:"default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (a *Article) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
