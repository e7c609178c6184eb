package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/infoshqip/internal/db"
)

func seedArticle(t *testing.T) db.Article {
	t.Helper()

	article := db.Article{
		TitleSq:    "Ushqimi i shëndetshëm",
		TitleEn:    "Healthy eating",
		ContentSq:  "## Këshilla\n\nHani më shumë perime.",
		ContentEn:  "## Tips\n\nEat more vegetables.",
		CategorySq: "Ushqyerja",
		CategoryEn: "Nutrition",
	}
	if err := db.DB.Create(&article).Error; err != nil {
		t.Fatalf("seed article: %v", err)
	}
	return article
}

func TestListArticlesDefaultsToAlbanian(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	seedArticle(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/articles", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Articles []struct {
			Title    string `json:"title"`
			Category string `json:"category"`
		} `json:"articles"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(resp.Articles))
	}
	if resp.Articles[0].Title != "Ushqimi i shëndetshëm" {
		t.Fatalf("expected Albanian title, got %q", resp.Articles[0].Title)
	}
	if resp.Articles[0].Category != "Ushqyerja" {
		t.Fatalf("expected Albanian category, got %q", resp.Articles[0].Category)
	}
}

func TestGetArticleEnglishRendersMarkdown(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	article := seedArticle(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/articles/"+article.ID+"?lang=en", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Title       string `json:"title"`
		ContentHTML string `json:"content_html"`
	}
	decodeBody(t, w, &resp)
	if resp.Title != "Healthy eating" {
		t.Fatalf("expected English title, got %q", resp.Title)
	}
	if !strings.Contains(resp.ContentHTML, "<h2") {
		t.Fatalf("expected rendered heading, got %q", resp.ContentHTML)
	}
}

func TestListArticleCategoriesLocalized(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	seedArticle(t)
	more := []db.Article{
		{
			TitleSq:    "Gjumi dhe shëndeti",
			TitleEn:    "Sleep and health",
			ContentSq:  "Flini mjaftueshëm.",
			ContentEn:  "Sleep enough.",
			CategorySq: "Gjumi",
			CategoryEn: "Sleep",
		},
		{
			TitleSq:    "Vitaminat",
			TitleEn:    "Vitamins",
			ContentSq:  "Rëndësia e vitaminave.",
			ContentEn:  "Why vitamins matter.",
			CategorySq: "Ushqyerja",
			CategoryEn: "Nutrition",
		},
	}
	for i := range more {
		if err := db.DB.Create(&more[i]).Error; err != nil {
			t.Fatalf("seed article: %v", err)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/articles/categories", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, w, &resp)
	// Repeated categories collapse to one entry, ordered by the
	// Albanian name.
	if len(resp.Categories) != 2 || resp.Categories[0] != "Gjumi" || resp.Categories[1] != "Ushqyerja" {
		t.Fatalf("unexpected categories: %v", resp.Categories)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, jsonRequest(t, http.MethodGet, "/api/articles/categories?lang=en", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w2.Code)
	}
	var respEn struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, w2, &respEn)
	if len(respEn.Categories) != 2 || respEn.Categories[0] != "Sleep" || respEn.Categories[1] != "Nutrition" {
		t.Fatalf("unexpected English categories: %v", respEn.Categories)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/articles/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetJobLocalizesPosition(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	job := db.Job{
		PositionSq:    "Infermier",
		PositionEn:    "Nurse",
		DescriptionSq: "Përshkrimi",
		DescriptionEn: "The description",
		LocationSq:    "Tiranë",
		LocationEn:    "Tirana",
		BusinessName:  "Spitali",
	}
	if err := db.DB.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/jobs/"+job.ID+"?lang=en", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Position     string `json:"position"`
		BusinessName string `json:"business_name"`
	}
	decodeBody(t, w, &resp)
	if resp.Position != "Nurse" || resp.BusinessName != "Spitali" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetPageBySlug(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	page := db.Page{
		Slug: "about", TitleSq: "Rreth nesh", TitleEn: "About us",
		ContentSq: "Përmbajtja", ContentEn: "The content",
	}
	if err := db.DB.Create(&page).Error; err != nil {
		t.Fatalf("seed page: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/pages/about", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Title string `json:"title"`
	}
	decodeBody(t, w, &resp)
	if resp.Title != "Rreth nesh" {
		t.Fatalf("expected Albanian title, got %q", resp.Title)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/pages/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing page, got %d", w.Code)
	}
}

func TestTrendingEndpoint(t *testing.T) {
	r, cleanup := setupTestServer(t)
	defer cleanup()

	article := seedArticle(t)
	for i := 0; i < 3; i++ {
		view := db.PageView{
			SessionID: "s" + string(rune('a'+i)),
			PagePath:  "/health/" + article.ID,
			VisitedAt: timeNowUTC(),
		}
		if err := db.DB.Create(&view).Error; err != nil {
			t.Fatalf("seed view: %v", err)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet, "/api/trending?lang=en", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Trending []struct {
			ID    string `json:"id"`
			Type  string `json:"type"`
			Title string `json:"title"`
			Views int    `json:"views"`
		} `json:"trending"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Trending) != 1 {
		t.Fatalf("expected 1 trending item, got %d", len(resp.Trending))
	}
	item := resp.Trending[0]
	if item.ID != article.ID || item.Type != "articles" || item.Title != "Healthy eating" || item.Views != 3 {
		t.Fatalf("unexpected trending item: %+v", item)
	}
}
