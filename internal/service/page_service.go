package service

import (
	"errors"
	"strings"

	"github.com/infoshqip/internal/db"
	"gorm.io/gorm"
)

// PageService manages the editable static pages (about, contact).
type PageService struct {
	db *gorm.DB
}

// PageInput represents fields accepted when saving a static page.
type PageInput struct {
	TitleSq   string
	TitleEn   string
	ContentSq string
	ContentEn string
}

// NewPageService creates a PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// Get fetches a page by slug.
func (s *PageService) Get(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", normalizeSlug(slug)).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// List returns all static pages ordered by slug.
func (s *PageService) List() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("slug asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Upsert creates the page for the slug or updates it when it already
// exists. The returned bool reports whether a new row was created.
func (s *PageService) Upsert(slug string, input PageInput) (*db.Page, bool, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, false, validationError("page slug is required")
	}
	if strings.TrimSpace(input.TitleSq) == "" || strings.TrimSpace(input.TitleEn) == "" {
		return nil, false, validationError("title is required in both languages")
	}

	var page db.Page
	err := s.db.Where("slug = ?", slug).First(&page).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		page = db.Page{
			Slug:      slug,
			TitleSq:   strings.TrimSpace(input.TitleSq),
			TitleEn:   strings.TrimSpace(input.TitleEn),
			ContentSq: input.ContentSq,
			ContentEn: input.ContentEn,
		}
		if err := s.db.Create(&page).Error; err != nil {
			return nil, false, err
		}
		return &page, true, nil
	case err != nil:
		return nil, false, err
	}

	page.TitleSq = strings.TrimSpace(input.TitleSq)
	page.TitleEn = strings.TrimSpace(input.TitleEn)
	page.ContentSq = input.ContentSq
	page.ContentEn = input.ContentEn
	if err := s.db.Save(&page).Error; err != nil {
		return nil, false, err
	}
	return &page, false, nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
