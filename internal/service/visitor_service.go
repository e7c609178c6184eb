package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/notify"
	"gorm.io/gorm"
)

const (
	// ActiveVisitorWindow is how long a heartbeat keeps a session counted
	// as "active" by readers.
	ActiveVisitorWindow = 5 * time.Minute
	// staleVisitorTTL is when the sweeper actually deletes an idle row.
	// Between the two windows a visitor is invisible but still cheap to
	// revive with a plain update.
	staleVisitorTTL = 30 * time.Minute
)

// geoResolver is the slice of GeoService the visitor tracker needs.
type geoResolver interface {
	Lookup(ctx context.Context, ip string) Location
}

// VisitInput carries everything a tracking call knows about the visitor.
type VisitInput struct {
	SessionID string
	PagePath  string
	UserAgent string
	Referrer  string
	IPAddress string
}

// VisitorService maintains the one ActiveVisitor row each session owns.
type VisitorService struct {
	db  *gorm.DB
	geo geoResolver
	hub *notify.Hub
	now func() time.Time
}

// NewVisitorService creates a VisitorService. geo and hub may be nil; the
// service then tracks without location data or change events.
func NewVisitorService(gdb *gorm.DB, geo geoResolver, hub *notify.Hub) *VisitorService {
	return &VisitorService{db: gdb, geo: geo, hub: hub, now: time.Now}
}

// WithNow overrides the clock, used by tests.
func (s *VisitorService) WithNow(now func() time.Time) *VisitorService {
	if now != nil {
		s.now = now
	}
	return s
}

// TrackVisit asserts presence for a session: insert a fresh row, and when
// the insert hits the session_id uniqueness constraint (another call got
// there first, or the session already exists) fall back to updating the
// page path and last-seen timestamp. Geolocation is resolved only on the
// insert path, so one external lookup per session, not per navigation.
func (s *VisitorService) TrackVisit(ctx context.Context, input VisitInput) error {
	if strings.TrimSpace(input.SessionID) == "" {
		return ErrSessionMissing
	}

	now := s.now().UTC()
	visitor := db.ActiveVisitor{
		SessionID: input.SessionID,
		PagePath:  input.PagePath,
		UserAgent: input.UserAgent,
		Referrer:  input.Referrer,
		IPAddress: input.IPAddress,
		LastSeen:  now,
	}

	if s.geo != nil {
		location := s.geo.Lookup(ctx, input.IPAddress)
		visitor.Country = location.Country
		visitor.CountryCode = location.CountryCode
		visitor.City = location.City
		visitor.Latitude = location.Latitude
		visitor.Longitude = location.Longitude
	}

	err := s.db.Create(&visitor).Error
	if err != nil && isDuplicateKey(err) {
		err = s.refresh(input.SessionID, input.PagePath, now)
	}
	if err != nil {
		return err
	}

	s.publish(notify.VisitorUpserted, input.SessionID, input.PagePath)
	return nil
}

// Heartbeat refreshes last_seen for an existing session. When the row has
// already been swept away the heartbeat falls back to a full upsert so a
// long-lived tab stays visible.
func (s *VisitorService) Heartbeat(ctx context.Context, input VisitInput) error {
	if strings.TrimSpace(input.SessionID) == "" {
		return ErrSessionMissing
	}

	now := s.now().UTC()
	result := s.db.Model(&db.ActiveVisitor{}).
		Where("session_id = ?", input.SessionID).
		Updates(map[string]interface{}{
			"page_path": input.PagePath,
			"last_seen": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.TrackVisit(ctx, input)
	}

	s.publish(notify.VisitorUpserted, input.SessionID, input.PagePath)
	return nil
}

// ActiveVisitors returns the sessions seen within the 5-minute window,
// newest first.
func (s *VisitorService) ActiveVisitors() ([]db.ActiveVisitor, error) {
	cutoff := s.now().UTC().Add(-ActiveVisitorWindow)

	var visitors []db.ActiveVisitor
	if err := s.db.
		Where("last_seen >= ?", cutoff).
		Order("last_seen DESC").
		Find(&visitors).Error; err != nil {
		return nil, err
	}
	return visitorsOrEmpty(visitors), nil
}

// ActiveCount counts sessions inside the active window.
func (s *VisitorService) ActiveCount() (int64, error) {
	cutoff := s.now().UTC().Add(-ActiveVisitorWindow)

	var count int64
	if err := s.db.Model(&db.ActiveVisitor{}).
		Where("last_seen >= ?", cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SweepStale deletes rows idle longer than the deletion TTL and returns
// how many were removed.
func (s *VisitorService) SweepStale() (int64, error) {
	cutoff := s.now().UTC().Add(-staleVisitorTTL)

	result := s.db.Where("last_seen < ?", cutoff).Delete(&db.ActiveVisitor{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		s.publish(notify.VisitorExpired, "", "")
	}
	return result.RowsAffected, nil
}

// StartSweeper runs SweepStale on the given interval until the returned
// stop function is called.
func (s *VisitorService) StartSweeper(interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := s.SweepStale(); err != nil {
					log.Printf("visitor sweep failed: %v", err)
				}
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}

func (s *VisitorService) refresh(sessionID, pagePath string, now time.Time) error {
	return s.db.Model(&db.ActiveVisitor{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"page_path": pagePath,
			"last_seen": now,
		}).Error
}

func (s *VisitorService) publish(kind, sessionID, pagePath string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(notify.Event{Kind: kind, SessionID: sessionID, PagePath: pagePath})
}

func visitorsOrEmpty(visitors []db.ActiveVisitor) []db.ActiveVisitor {
	if visitors == nil {
		return []db.ActiveVisitor{}
	}
	return visitors
}
