package service

import (
	"errors"
	"strings"

	"github.com/infoshqip/internal/db"
	"gorm.io/gorm"
)

// MythService wraps myth entry database operations.
type MythService struct {
	db *gorm.DB
}

// MythInput represents fields accepted when creating or updating a myth entry.
type MythInput struct {
	ClaimSq       string
	ClaimEn       string
	ExplanationSq string
	ExplanationEn string
}

// NewMythService creates a MythService instance.
func NewMythService(gdb *gorm.DB) *MythService {
	return &MythService{db: gdb}
}

// List returns myth entries ordered by created time descending.
func (s *MythService) List(search string) ([]db.Myth, error) {
	query := s.db.Model(&db.Myth{})

	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("claim_sq LIKE ? OR claim_en LIKE ?", like, like)
	}

	var myths []db.Myth
	if err := query.Order("created_at desc").Find(&myths).Error; err != nil {
		return nil, err
	}
	return myths, nil
}

// Get fetches a myth entry by id.
func (s *MythService) Get(id string) (*db.Myth, error) {
	var myth db.Myth
	if err := s.db.First(&myth, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMythNotFound
		}
		return nil, err
	}
	return &myth, nil
}

// Create persists a new myth entry after validating both language variants.
func (s *MythService) Create(input MythInput) (*db.Myth, error) {
	if err := validateMythInput(input); err != nil {
		return nil, err
	}

	myth := db.Myth{
		ClaimSq:       strings.TrimSpace(input.ClaimSq),
		ClaimEn:       strings.TrimSpace(input.ClaimEn),
		ExplanationSq: input.ExplanationSq,
		ExplanationEn: input.ExplanationEn,
	}
	if err := s.db.Create(&myth).Error; err != nil {
		return nil, err
	}
	return &myth, nil
}

// Update applies updates to an existing myth entry.
func (s *MythService) Update(id string, input MythInput) (*db.Myth, error) {
	if err := validateMythInput(input); err != nil {
		return nil, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	existing.ClaimSq = strings.TrimSpace(input.ClaimSq)
	existing.ClaimEn = strings.TrimSpace(input.ClaimEn)
	existing.ExplanationSq = input.ExplanationSq
	existing.ExplanationEn = input.ExplanationEn

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a myth entry by id.
func (s *MythService) Delete(id string) error {
	result := s.db.Delete(&db.Myth{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMythNotFound
	}
	return nil
}

func validateMythInput(input MythInput) error {
	if strings.TrimSpace(input.ClaimSq) == "" || strings.TrimSpace(input.ClaimEn) == "" {
		return validationError("claim is required in both languages")
	}
	if strings.TrimSpace(input.ExplanationSq) == "" || strings.TrimSpace(input.ExplanationEn) == "" {
		return validationError("explanation is required in both languages")
	}
	return nil
}
