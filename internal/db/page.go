package db

import "gorm.io/gorm"

// Page is a standalone bilingual page such as About or Contact.
type Page struct {
	gorm.Model
	Slug      string `gorm:"uniqueIndex;not null"`
	TitleSq   string `gorm:"column:title_sq;not null"`
	TitleEn   string `gorm:"column:title_en;not null"`
	ContentSq string `gorm:"column:content_sq;type:text"`
	ContentEn string `gorm:"column:content_en;type:text"`
}
