package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/db"
)

func timeNowUTC() time.Time {
	return time.Now().UTC()
}

func visitorCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "is_visitor_id" {
			return cookie
		}
	}
	t.Fatal("expected a visitor cookie to be issued")
	return nil
}

func TestTrackVisitIssuesSessionAndStoresVisitor(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, "/api/track/visit", gin.H{"page_path": "/jobs"})
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	cookie := visitorCookie(t, w)
	if !strings.Contains(cookie.Value, "-") {
		t.Fatalf("session id shape unexpected: %q", cookie.Value)
	}

	var visitor db.ActiveVisitor
	if err := db.DB.First(&visitor).Error; err != nil {
		t.Fatalf("expected visitor row: %v", err)
	}
	if visitor.SessionID != cookie.Value || visitor.PagePath != "/jobs" {
		t.Fatalf("unexpected visitor: %+v", visitor)
	}

	// A second visit with the same cookie refreshes instead of duplicating.
	w2 := httptest.NewRecorder()
	req2 := jsonRequest(t, http.MethodPost, "/api/track/visit", gin.H{"page_path": "/myths"})
	req2.AddCookie(cookie)
	r.ServeHTTP(w2, req2)

	var count int64
	db.DB.Model(&db.ActiveVisitor{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 visitor row, got %d", count)
	}
	if err := db.DB.First(&visitor).Error; err != nil {
		t.Fatalf("reload visitor: %v", err)
	}
	if visitor.PagePath != "/myths" {
		t.Fatalf("page path should refresh, got %q", visitor.PagePath)
	}
}

func TestHeartbeatRevivesExpiredVisitor(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, "/api/track/heartbeat", gin.H{"page_path": "/"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// A heartbeat for an unknown session falls back to inserting.
	var count int64
	db.DB.Model(&db.ActiveVisitor{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected heartbeat to insert a row, got %d", count)
	}
}

func TestTrackPageViewDeduplicates(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/track/pageview", gin.H{"page_path": "/jobs"}))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	cookie := visitorCookie(t, w)

	w2 := httptest.NewRecorder()
	req2 := jsonRequest(t, http.MethodPost, "/api/track/pageview", gin.H{"page_path": "/jobs"})
	req2.AddCookie(cookie)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w2.Code)
	}

	var count int64
	db.DB.Model(&db.PageView{}).Count(&count)
	if count != 1 {
		t.Fatalf("repeat view should deduplicate, got %d rows", count)
	}

	// A different path still records.
	w3 := httptest.NewRecorder()
	req3 := jsonRequest(t, http.MethodPost, "/api/track/pageview", gin.H{"page_path": "/myths"})
	req3.AddCookie(cookie)
	r.ServeHTTP(w3, req3)

	db.DB.Model(&db.PageView{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 rows after new path, got %d", count)
	}
}

func TestTrackContentViewIncrementsCounter(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	myth := db.Myth{ClaimSq: "m", ClaimEn: "m", ExplanationSq: "e", ExplanationEn: "e"}
	if err := db.DB.Create(&myth).Error; err != nil {
		t.Fatalf("seed myth: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/track/content-view", gin.H{
		"content_type": "myths", "content_id": myth.ID,
	}))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	cookie := visitorCookie(t, w)

	// Repeat from the same session does not double count.
	w2 := httptest.NewRecorder()
	req2 := jsonRequest(t, http.MethodPost, "/api/track/content-view", gin.H{
		"content_type": "myths", "content_id": myth.ID,
	})
	req2.AddCookie(cookie)
	r.ServeHTTP(w2, req2)

	var got db.Myth
	if err := db.DB.First(&got, "id = ?", myth.ID).Error; err != nil {
		t.Fatalf("reload myth: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("expected 1 view, got %d", got.Views)
	}
}

func TestTrackEndpointsSwallowErrors(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	// Unknown content type is logged, not surfaced.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/track/content-view", gin.H{
		"content_type": "podcasts", "content_id": "x",
	}))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for bad content type, got %d", w.Code)
	}

	// Malformed JSON is also a 204.
	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/track/visit", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for malformed body, got %d", w2.Code)
	}
}
