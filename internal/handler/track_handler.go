package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/service"
)

// trackRequest is the shared body for visit and page view beacons.
type trackRequest struct {
	PagePath string `json:"page_path"`
	Referrer string `json:"referrer"`
}

type contentViewRequest struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
}

// Tracking endpoints never fail the visitor: errors are attached to the
// gin context for the logger and the response is 204 regardless.

// TrackVisit registers or refreshes the caller as an active visitor.
func (a *API) TrackVisit(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := a.visitors.TrackVisit(c.Request.Context(), a.visitInput(c, req)); err != nil {
		c.Error(err)
	}
	c.Status(http.StatusNoContent)
}

// Heartbeat refreshes the caller's active visitor row.
func (a *API) Heartbeat(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := a.visitors.Heartbeat(c.Request.Context(), a.visitInput(c, req)); err != nil {
		c.Error(err)
	}
	c.Status(http.StatusNoContent)
}

// TrackPageView records one page view per session, path and day.
func (a *API) TrackPageView(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	input := service.PageViewInput{
		SessionID: ensureSessionID(c),
		PagePath:  req.PagePath,
		Referrer:  req.Referrer,
		UserAgent: c.Request.UserAgent(),
	}
	if _, err := a.analytics.RecordPageView(input); err != nil {
		c.Error(err)
	}
	c.Status(http.StatusNoContent)
}

// TrackContentView bumps the view counter of a content item.
func (a *API) TrackContentView(c *gin.Context) {
	var req contentViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if _, err := a.contentViews.CountView(ensureSessionID(c), req.ContentType, req.ContentID); err != nil {
		c.Error(err)
	}
	c.Status(http.StatusNoContent)
}

func (a *API) visitInput(c *gin.Context, req trackRequest) service.VisitInput {
	return service.VisitInput{
		SessionID: ensureSessionID(c),
		PagePath:  req.PagePath,
		UserAgent: c.Request.UserAgent(),
		Referrer:  req.Referrer,
		IPAddress: c.ClientIP(),
	}
}
