package service

import (
	"errors"
	"strings"

	"github.com/infoshqip/internal/db"
	"gorm.io/gorm"
)

// ArticleService wraps health article database operations.
type ArticleService struct {
	db *gorm.DB
}

// ArticleInput represents fields accepted when creating or updating an article.
type ArticleInput struct {
	TitleSq    string
	TitleEn    string
	ContentSq  string
	ContentEn  string
	CategorySq string
	CategoryEn string
	ImageURL   string
}

// ArticleFilter describes filters for listing articles.
type ArticleFilter struct {
	Search   string
	Category string
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// List returns articles ordered by created time descending, optionally
// narrowed by a category or a bilingual title/content search.
func (s *ArticleService) List(filter ArticleFilter) ([]db.Article, error) {
	query := s.db.Model(&db.Article{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"title_sq LIKE ? OR title_en LIKE ? OR content_sq LIKE ? OR content_en LIKE ?",
			like, like, like, like,
		)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category_sq = ? OR category_en = ?", category, category)
	}

	var articles []db.Article
	if err := query.Order("created_at desc").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Get fetches an article by id.
func (s *ArticleService) Get(id string) (*db.Article, error) {
	var article db.Article
	if err := s.db.First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Create persists a new article after validating both language variants.
func (s *ArticleService) Create(input ArticleInput) (*db.Article, error) {
	if err := validateArticleInput(input); err != nil {
		return nil, err
	}

	article := db.Article{
		TitleSq:    strings.TrimSpace(input.TitleSq),
		TitleEn:    strings.TrimSpace(input.TitleEn),
		ContentSq:  input.ContentSq,
		ContentEn:  input.ContentEn,
		CategorySq: strings.TrimSpace(input.CategorySq),
		CategoryEn: strings.TrimSpace(input.CategoryEn),
		ImageURL:   strings.TrimSpace(input.ImageURL),
	}
	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// Update applies updates to an existing article. The view counter is
// deliberately left untouched.
func (s *ArticleService) Update(id string, input ArticleInput) (*db.Article, error) {
	if err := validateArticleInput(input); err != nil {
		return nil, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	existing.TitleSq = strings.TrimSpace(input.TitleSq)
	existing.TitleEn = strings.TrimSpace(input.TitleEn)
	existing.ContentSq = input.ContentSq
	existing.ContentEn = input.ContentEn
	existing.CategorySq = strings.TrimSpace(input.CategorySq)
	existing.CategoryEn = strings.TrimSpace(input.CategoryEn)
	existing.ImageURL = strings.TrimSpace(input.ImageURL)

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an article by id.
func (s *ArticleService) Delete(id string) error {
	result := s.db.Delete(&db.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// Categories returns the distinct Albanian/English category pairs in use.
func (s *ArticleService) Categories() ([]db.Article, error) {
	var categories []db.Article
	if err := s.db.Model(&db.Article{}).
		Distinct("category_sq", "category_en").
		Order("category_sq asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func validateArticleInput(input ArticleInput) error {
	if strings.TrimSpace(input.TitleSq) == "" || strings.TrimSpace(input.TitleEn) == "" {
		return validationError("title is required in both languages")
	}
	if strings.TrimSpace(input.ContentSq) == "" || strings.TrimSpace(input.ContentEn) == "" {
		return validationError("content is required in both languages")
	}
	if strings.TrimSpace(input.CategorySq) == "" || strings.TrimSpace(input.CategoryEn) == "" {
		return validationError("category is required in both languages")
	}
	return nil
}
