package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupContentViewServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:content-view-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Article{}, &db.Job{}, &db.Myth{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func TestCountViewIncrementsOncePerSession(t *testing.T) {
	gdb, cleanup := setupContentViewServiceTestDB(t)
	defer cleanup()

	article := db.Article{TitleSq: "t", TitleEn: "t", ContentSq: "c", ContentEn: "c", CategorySq: "k", CategoryEn: "k"}
	if err := gdb.Create(&article).Error; err != nil {
		t.Fatalf("seed article: %v", err)
	}

	svc := NewContentViewService(gdb, store.NewTTLStore(ContentViewDedupWindow))

	counted, err := svc.CountView("s1", ContentArticles, article.ID)
	if err != nil || !counted {
		t.Fatalf("first view should count, got counted=%v err=%v", counted, err)
	}

	counted, err = svc.CountView("s1", ContentArticles, article.ID)
	if err != nil {
		t.Fatalf("second view: %v", err)
	}
	if counted {
		t.Fatal("repeat view by the same session should not count")
	}

	// A different session still counts.
	if counted, err = svc.CountView("s2", ContentArticles, article.ID); err != nil || !counted {
		t.Fatalf("other session should count, got counted=%v err=%v", counted, err)
	}

	var got db.Article
	if err := gdb.First(&got, "id = ?", article.ID).Error; err != nil {
		t.Fatalf("reload article: %v", err)
	}
	if got.Views != 2 {
		t.Fatalf("expected 2 views, got %d", got.Views)
	}
}

func TestCountViewRejectsBadInput(t *testing.T) {
	gdb, cleanup := setupContentViewServiceTestDB(t)
	defer cleanup()

	svc := NewContentViewService(gdb, store.NewTTLStore(ContentViewDedupWindow))

	if _, err := svc.CountView("", ContentArticles, "x"); !errors.Is(err, ErrSessionMissing) {
		t.Fatalf("expected ErrSessionMissing, got %v", err)
	}
	if _, err := svc.CountView("s1", "podcasts", "x"); !errors.Is(err, ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got %v", err)
	}
	if _, err := svc.CountView("s1", ContentJobs, "missing"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestCountViewMissingContentStaysEligible(t *testing.T) {
	gdb, cleanup := setupContentViewServiceTestDB(t)
	defer cleanup()

	seen := store.NewTTLStore(ContentViewDedupWindow)
	svc := NewContentViewService(gdb, seen)

	if _, err := svc.CountView("s1", ContentMyths, "ghost"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}

	myth := db.Myth{ID: "ghost", ClaimSq: "m", ClaimEn: "m", ExplanationSq: "e", ExplanationEn: "e"}
	if err := gdb.Create(&myth).Error; err != nil {
		t.Fatalf("seed myth: %v", err)
	}

	counted, err := svc.CountView("s1", ContentMyths, "ghost")
	if err != nil || !counted {
		t.Fatalf("view after content appears should count, got counted=%v err=%v", counted, err)
	}
}
