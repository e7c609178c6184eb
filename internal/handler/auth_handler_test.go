package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/db"
)

func TestLoginSuccessAndMe(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	seedAdmin(t, "admin@infoshqip.net", "secret123")
	cookies := loginAs(t, r, "admin@infoshqip.net", "secret123")

	w := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodGet, testAdminPrefix+"/me", nil)
	attachCookies(req, cookies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Email   string `json:"email"`
		IsAdmin bool   `json:"is_admin"`
	}
	decodeBody(t, w, &resp)
	if resp.Email != "admin@infoshqip.net" || !resp.IsAdmin {
		t.Fatalf("unexpected identity: %+v", resp)
	}
}

func TestMeRejectsSessionForDeletedAccount(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	user := seedAdmin(t, "admin@infoshqip.net", "secret123")
	cookies := loginAs(t, r, "admin@infoshqip.net", "secret123")

	if err := db.DB.Delete(&db.User{}, user.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	w := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodGet, testAdminPrefix+"/me", nil)
	attachCookies(req, cookies)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted account, got %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	seedAdmin(t, "admin@infoshqip.net", "secret123")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, testAdminPrefix+"/login", gin.H{
		"email": "admin@infoshqip.net", "password": "wrong",
	}))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginRejectsDisposableEmail(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, testAdminPrefix+"/login", gin.H{
		"email": "admin@mailinator.com", "password": "whatever",
	}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	seedAdmin(t, "admin@infoshqip.net", "secret123")

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(t, http.MethodPost, testAdminPrefix+"/login", gin.H{
			"email": "admin@infoshqip.net", "password": "wrong",
		}))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, testAdminPrefix+"/login", gin.H{
		"email": "admin@infoshqip.net", "password": "secret123",
	}))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after lockout, got %d", w.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, testAdminPrefix+"/api/articles", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	// A user without the admin role can log in but not reach the CMS.
	user := seedAdmin(t, "plain@infoshqip.net", "secret123")
	if err := db.DB.Where("user_id = ?", user.ID).Delete(&db.UserRole{}).Error; err != nil {
		t.Fatalf("strip role: %v", err)
	}

	cookies := loginAs(t, r, "plain@infoshqip.net", "secret123")

	w := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodGet, testAdminPrefix+"/api/articles", nil)
	attachCookies(req, cookies)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without admin role, got %d", w.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	seedAdmin(t, "admin@infoshqip.net", "secret123")
	cookies := loginAs(t, r, "admin@infoshqip.net", "secret123")

	w := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, testAdminPrefix+"/logout", nil)
	attachCookies(req, cookies)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// The cleared cookie no longer grants access.
	after := w.Result().Cookies()
	w2 := httptest.NewRecorder()
	req2 := jsonRequest(t, http.MethodGet, testAdminPrefix+"/api/articles", nil)
	attachCookies(req2, after)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w2.Code)
	}
}

func TestVerifyEmailEndpoint(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, testAdminPrefix+"/verify-email", gin.H{
		"email": "user@example.com",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, jsonRequest(t, http.MethodPost, testAdminPrefix+"/verify-email", gin.H{
		"email": "user@yopmail.com",
	}))
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for disposable domain, got %d", w2.Code)
	}
}
