package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/config"
	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/handler"
	"github.com/infoshqip/internal/notify"
	"github.com/infoshqip/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminPrefix = "/cms-test"

var ginOnce sync.Once

func setupTestServer(t *testing.T) (*gin.Engine, func()) {
	t.Helper()

	ginOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.User{}, &db.UserRole{}, &db.LoginAttempt{},
		&db.Article{}, &db.Job{}, &db.Myth{}, &db.Page{},
		&db.ActiveVisitor{}, &db.PageView{}, &db.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	db.DB = gdb

	cfg := config.AppConfig{
		SessionSecret:   "test-secret",
		AdminPathPrefix: testAdminPrefix,
		AllowedOrigins:  []string{"http://localhost:5173"},
		// Loopback address: the geo client skips unroutable IPs and the
		// empty API key disables remote email verification.
		GeoLookupBaseURL:   "http://127.0.0.1:1",
		EmailVerifyBaseURL: "http://127.0.0.1:1",
	}

	api := handler.NewAPI(gdb, &cfg, notify.NewHub(4))
	r := router.SetupRouter(api, &cfg)

	return r, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedAdmin(t *testing.T, email, password string) db.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := db.User{Email: email, Password: string(hashed)}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := db.DB.Create(&db.UserRole{UserID: user.ID, Role: db.RoleAdmin}).Error; err != nil {
		t.Fatalf("seed admin role: %v", err)
	}
	return user
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "127.0.0.1:52000"
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// loginAs authenticates against the admin prefix and returns the
// session cookies to attach to follow-up requests.
func loginAs(t *testing.T, r *gin.Engine, email, password string) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, testAdminPrefix+"/login", gin.H{
		"email": email, "password": password,
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func attachCookies(req *http.Request, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
}
