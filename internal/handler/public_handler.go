package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/locale"
	"github.com/infoshqip/internal/service"
)

type articleView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	Views       uint64    `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
}

type jobView struct {
	ID              string    `json:"id"`
	Position        string    `json:"position"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	Location        string    `json:"location"`
	BusinessName    string    `json:"business_name"`
	ApplicationLink string    `json:"application_link,omitempty"`
	Views           uint64    `json:"views"`
	CreatedAt       time.Time `json:"created_at"`
}

type mythView struct {
	ID              string    `json:"id"`
	Claim           string    `json:"claim"`
	Explanation     string    `json:"explanation"`
	ExplanationHTML string    `json:"explanation_html,omitempty"`
	Views           uint64    `json:"views"`
	CreatedAt       time.Time `json:"created_at"`
}

type pageView struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html,omitempty"`
}

// requestLanguage resolves the response language from the lang query
// parameter, then the Accept-Language header, falling back to Albanian.
func requestLanguage(c *gin.Context) string {
	if lang := locale.NormalizeLanguage(c.Query("lang")); lang != "" {
		return lang
	}
	if lang := locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language")); lang != "" {
		return lang
	}
	return locale.LanguageAlbanian
}

// ListArticles returns published health articles, localized.
func (a *API) ListArticles(c *gin.Context) {
	articles, err := a.articles.List(service.ArticleFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	english := requestLanguage(c) == locale.LanguageEnglish
	views := make([]articleView, 0, len(articles))
	for i := range articles {
		views = append(views, localizeArticle(&articles[i], english, false))
	}
	c.JSON(http.StatusOK, gin.H{"articles": views})
}

// ListArticleCategories returns the distinct article categories in the
// requested language, for the category browse filter.
func (a *API) ListArticleCategories(c *gin.Context) {
	categories, err := a.articles.Categories()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	english := requestLanguage(c) == locale.LanguageEnglish
	names := make([]string, 0, len(categories))
	for _, entry := range categories {
		if english {
			names = append(names, entry.CategoryEn)
		} else {
			names = append(names, entry.CategorySq)
		}
	}
	c.JSON(http.StatusOK, gin.H{"categories": names})
}

// GetArticle returns one article with its content rendered to HTML.
func (a *API) GetArticle(c *gin.Context) {
	article, err := a.articles.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := localizeArticle(article, requestLanguage(c) == locale.LanguageEnglish, true)
	c.JSON(http.StatusOK, view)
}

// ListJobs returns job postings, localized.
func (a *API) ListJobs(c *gin.Context) {
	jobs, err := a.jobs.List(service.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	english := requestLanguage(c) == locale.LanguageEnglish
	views := make([]jobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, localizeJob(&jobs[i], english, false))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": views})
}

// GetJob returns one job posting with its description rendered to HTML.
func (a *API) GetJob(c *gin.Context) {
	job, err := a.jobs.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := localizeJob(job, requestLanguage(c) == locale.LanguageEnglish, true)
	c.JSON(http.StatusOK, view)
}

// ListMyths returns myth entries, localized.
func (a *API) ListMyths(c *gin.Context) {
	myths, err := a.myths.List(c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	english := requestLanguage(c) == locale.LanguageEnglish
	views := make([]mythView, 0, len(myths))
	for i := range myths {
		views = append(views, localizeMyth(&myths[i], english, false))
	}
	c.JSON(http.StatusOK, gin.H{"myths": views})
}

// GetMyth returns one myth entry with its explanation rendered to HTML.
func (a *API) GetMyth(c *gin.Context) {
	myth, err := a.myths.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := localizeMyth(myth, requestLanguage(c) == locale.LanguageEnglish, true)
	c.JSON(http.StatusOK, view)
}

// GetPage returns a static page by slug, localized and rendered.
func (a *API) GetPage(c *gin.Context) {
	page, err := a.pages.Get(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	english := requestLanguage(c) == locale.LanguageEnglish
	view := pageView{Slug: page.Slug}
	if english {
		view.Title = page.TitleEn
		view.Content = page.ContentEn
	} else {
		view.Title = page.TitleSq
		view.Content = page.ContentSq
	}
	if rendered, err := renderMarkdown(view.Content); err == nil {
		view.ContentHTML = rendered
	} else {
		c.Error(err)
	}
	c.JSON(http.StatusOK, view)
}

// Trending returns the most viewed content over the trailing week.
func (a *API) Trending(c *gin.Context) {
	items, err := a.analytics.Trending(requestLanguage(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trending": items})
}

func localizeArticle(article *db.Article, english, render bool) articleView {
	view := articleView{
		ID:        article.ID,
		ImageURL:  article.ImageURL,
		Views:     article.Views,
		CreatedAt: article.CreatedAt,
	}
	if english {
		view.Title = article.TitleEn
		view.Content = article.ContentEn
		view.Category = article.CategoryEn
	} else {
		view.Title = article.TitleSq
		view.Content = article.ContentSq
		view.Category = article.CategorySq
	}
	if render {
		if rendered, err := renderMarkdown(view.Content); err == nil {
			view.ContentHTML = rendered
		}
	}
	return view
}

func localizeJob(job *db.Job, english, render bool) jobView {
	view := jobView{
		ID:              job.ID,
		BusinessName:    job.BusinessName,
		ApplicationLink: job.ApplicationLink,
		Views:           job.Views,
		CreatedAt:       job.CreatedAt,
	}
	if english {
		view.Position = job.PositionEn
		view.Description = job.DescriptionEn
		view.Location = job.LocationEn
	} else {
		view.Position = job.PositionSq
		view.Description = job.DescriptionSq
		view.Location = job.LocationSq
	}
	if render {
		if rendered, err := renderMarkdown(view.Description); err == nil {
			view.DescriptionHTML = rendered
		}
	}
	return view
}

func localizeMyth(myth *db.Myth, english, render bool) mythView {
	view := mythView{
		ID:        myth.ID,
		Views:     myth.Views,
		CreatedAt: myth.CreatedAt,
	}
	if english {
		view.Claim = myth.ClaimEn
		view.Explanation = myth.ExplanationEn
	} else {
		view.Claim = myth.ClaimSq
		view.Explanation = myth.ExplanationSq
	}
	if render {
		if rendered, err := renderMarkdown(view.Explanation); err == nil {
			view.ExplanationHTML = rendered
		}
	}
	return view
}
