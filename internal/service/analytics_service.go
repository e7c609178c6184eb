package service

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/locale"
	"github.com/infoshqip/internal/notify"
	"github.com/infoshqip/internal/store"
	"gorm.io/gorm"
)

const (
	// PageViewDedupWindow suppresses duplicate page views per session and
	// path. Client storage used to do this; the TTL store does now. It is
	// still a heuristic: a restarted server or a second instance can
	// record duplicates.
	PageViewDedupWindow = 24 * time.Hour
	// TrendingWindow is the trailing period content is ranked over.
	TrendingWindow = 7 * 24 * time.Hour

	trendingLimit = 10
	topPagesLimit = 10
)

// Content type keys used in dedup keys, trending output and audit rows.
const (
	ContentArticles = "articles"
	ContentJobs     = "jobs"
	ContentMyths    = "myths"
)

// Detail routes that count toward trending content.
var (
	healthPathPattern = regexp.MustCompile(`^/health/([a-f0-9-]+)$`)
	jobsPathPattern   = regexp.MustCompile(`^/jobs/([a-f0-9-]+)$`)
	mythsPathPattern  = regexp.MustCompile(`^/myths/([a-f0-9-]+)$`)
)

// PageViewInput describes a navigation event to record.
type PageViewInput struct {
	SessionID string
	PagePath  string
	Referrer  string
	UserAgent string
}

// TrendingItem is a ranked content entry. Derived on demand, never
// persisted.
type TrendingItem struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Views int    `json:"views"`
}

// DailyPoint is one day of traffic in the visitor trend chart.
type DailyPoint struct {
	Day   string `json:"day"`
	Views int    `json:"views"`
}

// HourPoint is one hour-of-day bucket in the peak-hours chart.
type HourPoint struct {
	Hour  string `json:"hour"`
	Views int    `json:"views"`
}

// PagePoint is one entry of the most-visited-pages list.
type PagePoint struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// AnalyticsService records page views and answers the dashboard's
// aggregate queries. Every aggregate is recomputed per call; nothing is
// cached server-side.
type AnalyticsService struct {
	db   *gorm.DB
	seen store.Marker
	hub  *notify.Hub
	now  func() time.Time
}

// NewAnalyticsService creates an AnalyticsService. seen handles the 24h
// per-session dedup; pass nil to disable dedup (tests mostly do).
func NewAnalyticsService(gdb *gorm.DB, seen store.Marker, hub *notify.Hub) *AnalyticsService {
	return &AnalyticsService{db: gdb, seen: seen, hub: hub, now: time.Now}
}

// WithNow overrides the clock, used by tests.
func (s *AnalyticsService) WithNow(now func() time.Time) *AnalyticsService {
	if now != nil {
		s.now = now
	}
	return s
}

// RecordPageView inserts a PageView unless the (session, path) pair was
// already recorded within the dedup window. The dedup key is marked only
// after a successful insert, so a failed write stays eligible for retry.
// The returned bool reports whether a row was written.
func (s *AnalyticsService) RecordPageView(input PageViewInput) (bool, error) {
	if strings.TrimSpace(input.SessionID) == "" {
		return false, ErrSessionMissing
	}

	key := pageViewKey(input.SessionID, input.PagePath)
	if s.seen != nil && s.seen.Fresh(key) {
		return false, nil
	}

	view := db.PageView{
		SessionID: input.SessionID,
		PagePath:  input.PagePath,
		Referrer:  input.Referrer,
		UserAgent: input.UserAgent,
		VisitedAt: s.now().UTC(),
	}
	if err := s.db.Create(&view).Error; err != nil {
		return false, err
	}

	if s.seen != nil {
		s.seen.Mark(key)
	}
	if s.hub != nil {
		s.hub.Publish(notify.Event{Kind: notify.PageViewed, SessionID: input.SessionID, PagePath: input.PagePath})
	}
	return true, nil
}

// Trending ranks content by page views over the trailing 7 days and
// resolves bilingual display titles, skipping ids that no longer exist.
func (s *AnalyticsService) Trending(language string) ([]TrendingItem, error) {
	since := s.now().UTC().Add(-TrendingWindow)

	var paths []string
	if err := s.db.Model(&db.PageView{}).
		Where("visited_at >= ?", since).
		Order("id ASC").
		Pluck("page_path", &paths).Error; err != nil {
		return nil, err
	}

	ranked := rankContentPaths(paths, trendingLimit)
	english := locale.NormalizeLanguage(language) == locale.LanguageEnglish

	trending := make([]TrendingItem, 0, len(ranked))
	for _, entry := range ranked {
		title, err := s.resolveTitle(entry.contentType, entry.id, english)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // deleted content
			}
			return nil, err
		}
		trending = append(trending, TrendingItem{
			ID:    entry.id,
			Type:  entry.contentType,
			Title: title,
			Views: entry.count,
		})
	}
	return trending, nil
}

// DailyTrend groups the trailing 7 days of page views by calendar day.
func (s *AnalyticsService) DailyTrend() ([]DailyPoint, error) {
	since := s.now().UTC().Add(-TrendingWindow)

	timestamps, err := s.visitTimestamps(since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, visitedAt := range timestamps {
		day := visitedAt.UTC().Format("Jan 02")
		if _, ok := counts[day]; !ok {
			order = append(order, day)
		}
		counts[day]++
	}

	points := make([]DailyPoint, 0, len(order))
	for _, day := range order {
		points = append(points, DailyPoint{Day: day, Views: counts[day]})
	}
	return points, nil
}

// PeakHours buckets the trailing 24 hours of page views by hour of day.
// All 24 buckets are always present so the chart axis stays stable.
func (s *AnalyticsService) PeakHours() ([]HourPoint, error) {
	since := s.now().UTC().Add(-24 * time.Hour)

	timestamps, err := s.visitTimestamps(since)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, visitedAt := range timestamps {
		counts[visitedAt.UTC().Hour()]++
	}

	points := make([]HourPoint, 0, 24)
	for hour := 0; hour < 24; hour++ {
		points = append(points, HourPoint{Hour: fmt.Sprintf("%d:00", hour), Views: counts[hour]})
	}
	return points, nil
}

// TopPages returns the ten most visited paths of the trailing 7 days.
func (s *AnalyticsService) TopPages() ([]PagePoint, error) {
	since := s.now().UTC().Add(-TrendingWindow)

	var rows []struct {
		PagePath string
		Count    int
	}
	if err := s.db.Model(&db.PageView{}).
		Select("page_path, COUNT(*) AS count").
		Where("visited_at >= ?", since).
		Group("page_path").
		Order("count DESC").
		Limit(topPagesLimit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	points := make([]PagePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, PagePoint{Path: row.PagePath, Views: row.Count})
	}
	return points, nil
}

// WeeklyViews counts all page views in the trailing 7 days.
func (s *AnalyticsService) WeeklyViews() (int64, error) {
	since := s.now().UTC().Add(-TrendingWindow)

	var count int64
	if err := s.db.Model(&db.PageView{}).
		Where("visited_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *AnalyticsService) visitTimestamps(since time.Time) ([]time.Time, error) {
	var timestamps []time.Time
	if err := s.db.Model(&db.PageView{}).
		Where("visited_at >= ?", since).
		Order("visited_at ASC").
		Pluck("visited_at", &timestamps).Error; err != nil {
		return nil, err
	}
	return timestamps, nil
}

func (s *AnalyticsService) resolveTitle(contentType, id string, english bool) (string, error) {
	switch contentType {
	case ContentArticles:
		var article db.Article
		if err := s.db.Select("id, title_sq, title_en").First(&article, "id = ?", id).Error; err != nil {
			return "", err
		}
		if english {
			return article.TitleEn, nil
		}
		return article.TitleSq, nil
	case ContentJobs:
		var job db.Job
		if err := s.db.Select("id, position_sq, position_en, business_name").First(&job, "id = ?", id).Error; err != nil {
			return "", err
		}
		position := job.PositionSq
		if english {
			position = job.PositionEn
		}
		return fmt.Sprintf("%s - %s", position, job.BusinessName), nil
	case ContentMyths:
		var myth db.Myth
		if err := s.db.Select("id, claim_sq, claim_en").First(&myth, "id = ?", id).Error; err != nil {
			return "", err
		}
		if english {
			return myth.ClaimEn, nil
		}
		return myth.ClaimSq, nil
	}
	return "", ErrUnknownContentType
}

type contentRank struct {
	contentType string
	id          string
	count       int
}

// rankContentPaths counts detail-route hits per (type, id) pair and
// returns the top entries by count. Ties keep first-seen order: entries
// are accumulated in input order and the sort is stable.
func rankContentPaths(paths []string, limit int) []contentRank {
	counts := make(map[string]*contentRank)
	var order []*contentRank

	for _, path := range paths {
		contentType, id, ok := matchContentPath(path)
		if !ok {
			continue
		}
		key := contentType + ":" + id
		entry, exists := counts[key]
		if !exists {
			entry = &contentRank{contentType: contentType, id: id}
			counts[key] = entry
			order = append(order, entry)
		}
		entry.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	ranked := make([]contentRank, 0, len(order))
	for _, entry := range order {
		ranked = append(ranked, *entry)
	}
	return ranked
}

func matchContentPath(path string) (contentType, id string, ok bool) {
	if m := healthPathPattern.FindStringSubmatch(path); m != nil {
		return ContentArticles, m[1], true
	}
	if m := jobsPathPattern.FindStringSubmatch(path); m != nil {
		return ContentJobs, m[1], true
	}
	if m := mythsPathPattern.FindStringSubmatch(path); m != nil {
		return ContentMyths, m[1], true
	}
	return "", "", false
}

func pageViewKey(sessionID, pagePath string) string {
	return "view:" + sessionID + ":" + pagePath
}
