package service

import (
	"strings"
	"time"

	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/store"
	"gorm.io/gorm"
)

// ContentViewDedupWindow is how long a session's view of a specific
// content item keeps follow-up views from counting again.
const ContentViewDedupWindow = 24 * time.Hour

// ContentViewService bumps per-item view counters. Counting is
// deduplicated per (session, type, id) so reloading a detail page does
// not inflate the number.
type ContentViewService struct {
	db   *gorm.DB
	seen store.Marker
}

func NewContentViewService(gdb *gorm.DB, seen store.Marker) *ContentViewService {
	return &ContentViewService{db: gdb, seen: seen}
}

// CountView increments the views column of the addressed content row.
// The increment runs as a single UPDATE so concurrent views never lose
// counts. The returned bool reports whether the counter moved.
func (s *ContentViewService) CountView(sessionID, contentType, contentID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, ErrSessionMissing
	}
	if strings.TrimSpace(contentID) == "" {
		return false, validationError("content id is required")
	}

	var model interface{}
	switch contentType {
	case ContentArticles:
		model = &db.Article{}
	case ContentJobs:
		model = &db.Job{}
	case ContentMyths:
		model = &db.Myth{}
	default:
		return false, ErrUnknownContentType
	}

	key := contentViewKey(sessionID, contentType, contentID)
	if s.seen != nil && s.seen.Fresh(key) {
		return false, nil
	}

	result := s.db.Model(model).
		Where("id = ?", contentID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, ErrContentNotFound
	}

	if s.seen != nil {
		s.seen.Mark(key)
	}
	return true, nil
}

func contentViewKey(sessionID, contentType, contentID string) string {
	return "content:" + sessionID + ":" + contentType + ":" + contentID
}
