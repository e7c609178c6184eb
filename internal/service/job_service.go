package service

import (
	"errors"
	"strings"

	"github.com/infoshqip/internal/db"
	"gorm.io/gorm"
)

// JobService wraps job posting database operations.
type JobService struct {
	db *gorm.DB
}

// JobInput represents fields accepted when creating or updating a job posting.
type JobInput struct {
	PositionSq      string
	PositionEn      string
	DescriptionSq   string
	DescriptionEn   string
	LocationSq      string
	LocationEn      string
	BusinessName    string
	ApplicationLink string
}

// JobFilter describes filters for listing job postings.
type JobFilter struct {
	Search   string
	Location string
}

// NewJobService creates a JobService instance.
func NewJobService(gdb *gorm.DB) *JobService {
	return &JobService{db: gdb}
}

// List returns job postings ordered by created time descending.
func (s *JobService) List(filter JobFilter) ([]db.Job, error) {
	query := s.db.Model(&db.Job{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"position_sq LIKE ? OR position_en LIKE ? OR business_name LIKE ?",
			like, like, like,
		)
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		query = query.Where("location_sq = ? OR location_en = ?", location, location)
	}

	var jobs []db.Job
	if err := query.Order("created_at desc").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Get fetches a job posting by id.
func (s *JobService) Get(id string) (*db.Job, error) {
	var job db.Job
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Create persists a new job posting after validating both language variants.
func (s *JobService) Create(input JobInput) (*db.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	job := db.Job{
		PositionSq:      strings.TrimSpace(input.PositionSq),
		PositionEn:      strings.TrimSpace(input.PositionEn),
		DescriptionSq:   input.DescriptionSq,
		DescriptionEn:   input.DescriptionEn,
		LocationSq:      strings.TrimSpace(input.LocationSq),
		LocationEn:      strings.TrimSpace(input.LocationEn),
		BusinessName:    strings.TrimSpace(input.BusinessName),
		ApplicationLink: strings.TrimSpace(input.ApplicationLink),
	}
	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Update applies updates to an existing job posting.
func (s *JobService) Update(id string, input JobInput) (*db.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	existing.PositionSq = strings.TrimSpace(input.PositionSq)
	existing.PositionEn = strings.TrimSpace(input.PositionEn)
	existing.DescriptionSq = input.DescriptionSq
	existing.DescriptionEn = input.DescriptionEn
	existing.LocationSq = strings.TrimSpace(input.LocationSq)
	existing.LocationEn = strings.TrimSpace(input.LocationEn)
	existing.BusinessName = strings.TrimSpace(input.BusinessName)
	existing.ApplicationLink = strings.TrimSpace(input.ApplicationLink)

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a job posting by id.
func (s *JobService) Delete(id string) error {
	result := s.db.Delete(&db.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func validateJobInput(input JobInput) error {
	if strings.TrimSpace(input.PositionSq) == "" || strings.TrimSpace(input.PositionEn) == "" {
		return validationError("position is required in both languages")
	}
	if strings.TrimSpace(input.DescriptionSq) == "" || strings.TrimSpace(input.DescriptionEn) == "" {
		return validationError("description is required in both languages")
	}
	if strings.TrimSpace(input.BusinessName) == "" {
		return validationError("business name is required")
	}
	return nil
}
