package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/locale"
	"github.com/infoshqip/internal/useragent"
)

type activeVisitorView struct {
	SessionID string               `json:"session_id"`
	PagePath  string               `json:"page_path"`
	Referrer  string               `json:"referrer,omitempty"`
	Country   *string              `json:"country,omitempty"`
	City      *string              `json:"city,omitempty"`
	Latitude  *float64             `json:"latitude,omitempty"`
	Longitude *float64             `json:"longitude,omitempty"`
	Device    useragent.DeviceInfo `json:"device"`
	Language  string               `json:"language"`
	Locale    string               `json:"locale"`
	LastSeen  time.Time            `json:"last_seen"`
}

// ActiveVisitors lists visitors seen within the active window, with
// their user agents parsed into device details and the response
// language the site would pick for their country.
func (a *API) ActiveVisitors(c *gin.Context) {
	visitors, err := a.visitors.ActiveVisitors()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	views := make([]activeVisitorView, 0, len(visitors))
	for _, v := range visitors {
		code := ""
		if v.CountryCode != nil {
			code = *v.CountryCode
		}
		pref := locale.PreferenceForLanguage(locale.LanguageFromCountryCode(code))
		views = append(views, activeVisitorView{
			SessionID: v.SessionID,
			PagePath:  v.PagePath,
			Referrer:  v.Referrer,
			Country:   v.Country,
			City:      v.City,
			Latitude:  v.Latitude,
			Longitude: v.Longitude,
			Device:    useragent.Parse(v.UserAgent),
			Language:  pref.Language,
			Locale:    pref.Locale,
			LastSeen:  v.LastSeen,
		})
	}
	c.JSON(http.StatusOK, gin.H{"visitors": views, "count": len(views)})
}

// AnalyticsSummary aggregates the dashboard headline numbers.
func (a *API) AnalyticsSummary(c *gin.Context) {
	activeCount, err := a.visitors.ActiveCount()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	weeklyViews, err := a.analytics.WeeklyViews()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var articleCount, jobCount, mythCount int64
	if err := a.db.Model(&db.Article{}).Count(&articleCount).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if err := a.db.Model(&db.Job{}).Count(&jobCount).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if err := a.db.Model(&db.Myth{}).Count(&mythCount).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active_visitors": activeCount,
		"weekly_views":    weeklyViews,
		"articles":        articleCount,
		"jobs":            jobCount,
		"myths":           mythCount,
	})
}

// DailyTrend returns per-day view counts for the trailing week.
func (a *API) DailyTrend(c *gin.Context) {
	points, err := a.analytics.DailyTrend()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily": points})
}

// PeakHours returns hourly view counts over the trailing 24 hours.
func (a *API) PeakHours(c *gin.Context) {
	points, err := a.analytics.PeakHours()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": points})
}

// TopPages returns the most viewed paths over the trailing week.
func (a *API) TopPages(c *gin.Context) {
	points, err := a.analytics.TopPages()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": points})
}

// StreamEvents pushes visitor and page view events to the dashboard as
// server-sent events until the client disconnects.
func (a *API) StreamEvents(c *gin.Context) {
	events, cancel := a.hub.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(event.Kind, gin.H{
				"session_id": event.SessionID,
				"page_path":  event.PagePath,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
