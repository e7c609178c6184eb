package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/service"
)

type articleRequest struct {
	TitleSq    string `json:"title_sq"`
	TitleEn    string `json:"title_en"`
	ContentSq  string `json:"content_sq"`
	ContentEn  string `json:"content_en"`
	CategorySq string `json:"category_sq"`
	CategoryEn string `json:"category_en"`
	ImageURL   string `json:"image_url"`
}

type jobRequest struct {
	PositionSq      string `json:"position_sq"`
	PositionEn      string `json:"position_en"`
	DescriptionSq   string `json:"description_sq"`
	DescriptionEn   string `json:"description_en"`
	LocationSq      string `json:"location_sq"`
	LocationEn      string `json:"location_en"`
	BusinessName    string `json:"business_name"`
	ApplicationLink string `json:"application_link"`
}

type mythRequest struct {
	ClaimSq       string `json:"claim_sq"`
	ClaimEn       string `json:"claim_en"`
	ExplanationSq string `json:"explanation_sq"`
	ExplanationEn string `json:"explanation_en"`
}

type pageRequest struct {
	TitleSq   string `json:"title_sq"`
	TitleEn   string `json:"title_en"`
	ContentSq string `json:"content_sq"`
	ContentEn string `json:"content_en"`
}

// audit appends an entry for an admin mutation. A failed write is
// attached to the context for the logger but never rolls back the
// mutation itself.
func (a *API) audit(c *gin.Context, action, tableName, recordID string, oldValue, newValue interface{}) {
	userID, userEmail := sessionIdentity(c)
	err := a.audits.Record(service.AuditEntry{
		UserID:    userID,
		UserEmail: userEmail,
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		OldValue:  oldValue,
		NewValue:  newValue,
	})
	if err != nil {
		c.Error(err)
	}
}

// AdminListArticles returns every article with both language variants.
func (a *API) AdminListArticles(c *gin.Context) {
	articles, err := a.articles.List(service.ArticleFilter{Search: c.Query("search")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// AdminGetArticle returns one article with both language variants.
func (a *API) AdminGetArticle(c *gin.Context) {
	article, err := a.articles.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// AdminCreateArticle creates an article and records the audit entry.
func (a *API) AdminCreateArticle(c *gin.Context) {
	var req articleRequest
	if !bindJSON(c, &req, "invalid article payload") {
		return
	}

	article, err := a.articles.Create(articleInputFrom(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionCreate, "articles", article.ID, nil, article)
	c.JSON(http.StatusCreated, article)
}

// AdminUpdateArticle updates an article and records old and new state.
func (a *API) AdminUpdateArticle(c *gin.Context) {
	var req articleRequest
	if !bindJSON(c, &req, "invalid article payload") {
		return
	}

	before, err := a.articles.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	article, err := a.articles.Update(before.ID, articleInputFrom(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionUpdate, "articles", article.ID, before, article)
	c.JSON(http.StatusOK, article)
}

// AdminDeleteArticle deletes an article and records its last state.
func (a *API) AdminDeleteArticle(c *gin.Context) {
	before, err := a.articles.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.articles.Delete(before.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionDelete, "articles", before.ID, before, nil)
	c.Status(http.StatusNoContent)
}

// AdminListJobs returns every job posting with both language variants.
func (a *API) AdminListJobs(c *gin.Context) {
	jobs, err := a.jobs.List(service.JobFilter{Search: c.Query("search")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// AdminGetJob returns one job posting with both language variants.
func (a *API) AdminGetJob(c *gin.Context) {
	job, err := a.jobs.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// AdminCreateJob creates a job posting and records the audit entry.
func (a *API) AdminCreateJob(c *gin.Context) {
	var req jobRequest
	if !bindJSON(c, &req, "invalid job payload") {
		return
	}

	job, err := a.jobs.Create(jobInputFrom(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionCreate, "jobs", job.ID, nil, job)
	c.JSON(http.StatusCreated, job)
}

// AdminUpdateJob updates a job posting and records old and new state.
func (a *API) AdminUpdateJob(c *gin.Context) {
	var req jobRequest
	if !bindJSON(c, &req, "invalid job payload") {
		return
	}

	before, err := a.jobs.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	job, err := a.jobs.Update(before.ID, jobInputFrom(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionUpdate, "jobs", job.ID, before, job)
	c.JSON(http.StatusOK, job)
}

// AdminDeleteJob deletes a job posting and records its last state.
func (a *API) AdminDeleteJob(c *gin.Context) {
	before, err := a.jobs.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.jobs.Delete(before.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionDelete, "jobs", before.ID, before, nil)
	c.Status(http.StatusNoContent)
}

// AdminListMyths returns every myth entry with both language variants.
func (a *API) AdminListMyths(c *gin.Context) {
	myths, err := a.myths.List(c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"myths": myths})
}

// AdminGetMyth returns one myth entry with both language variants.
func (a *API) AdminGetMyth(c *gin.Context) {
	myth, err := a.myths.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, myth)
}

// AdminCreateMyth creates a myth entry and records the audit entry.
func (a *API) AdminCreateMyth(c *gin.Context) {
	var req mythRequest
	if !bindJSON(c, &req, "invalid myth payload") {
		return
	}

	myth, err := a.myths.Create(mythInputFrom(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionCreate, "myths", myth.ID, nil, myth)
	c.JSON(http.StatusCreated, myth)
}

// AdminUpdateMyth updates a myth entry and records old and new state.
func (a *API) AdminUpdateMyth(c *gin.Context) {
	var req mythRequest
	if !bindJSON(c, &req, "invalid myth payload") {
		return
	}

	before, err := a.myths.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	myth, err := a.myths.Update(before.ID, mythInputFrom(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionUpdate, "myths", myth.ID, before, myth)
	c.JSON(http.StatusOK, myth)
}

// AdminDeleteMyth deletes a myth entry and records its last state.
func (a *API) AdminDeleteMyth(c *gin.Context) {
	before, err := a.myths.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.myths.Delete(before.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	a.audit(c, db.AuditActionDelete, "myths", before.ID, before, nil)
	c.Status(http.StatusNoContent)
}

// AdminListPages returns every editable static page.
func (a *API) AdminListPages(c *gin.Context) {
	pages, err := a.pages.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// AdminSavePage creates or updates the static page for a slug.
func (a *API) AdminSavePage(c *gin.Context) {
	var req pageRequest
	if !bindJSON(c, &req, "invalid page payload") {
		return
	}

	slug := c.Param("slug")
	before, err := a.pages.Get(slug)
	if err != nil && !errors.Is(err, service.ErrPageNotFound) {
		respondServiceError(c, err)
		return
	}

	page, created, err := a.pages.Upsert(slug, service.PageInput{
		TitleSq:   req.TitleSq,
		TitleEn:   req.TitleEn,
		ContentSq: req.ContentSq,
		ContentEn: req.ContentEn,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if created {
		a.audit(c, db.AuditActionCreate, "pages", page.Slug, nil, page)
		c.JSON(http.StatusCreated, page)
		return
	}
	a.audit(c, db.AuditActionUpdate, "pages", page.Slug, before, page)
	c.JSON(http.StatusOK, page)
}

// AdminListAuditLogs returns the newest audit entries.
func (a *API) AdminListAuditLogs(c *gin.Context) {
	logs, err := a.audits.Recent()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit_logs": logs})
}

func articleInputFrom(req articleRequest) service.ArticleInput {
	return service.ArticleInput{
		TitleSq:    req.TitleSq,
		TitleEn:    req.TitleEn,
		ContentSq:  req.ContentSq,
		ContentEn:  req.ContentEn,
		CategorySq: req.CategorySq,
		CategoryEn: req.CategoryEn,
		ImageURL:   req.ImageURL,
	}
}

func jobInputFrom(req jobRequest) service.JobInput {
	return service.JobInput{
		PositionSq:      req.PositionSq,
		PositionEn:      req.PositionEn,
		DescriptionSq:   req.DescriptionSq,
		DescriptionEn:   req.DescriptionEn,
		LocationSq:      req.LocationSq,
		LocationEn:      req.LocationEn,
		BusinessName:    req.BusinessName,
		ApplicationLink: req.ApplicationLink,
	}
}

func mythInputFrom(req mythRequest) service.MythInput {
	return service.MythInput{
		ClaimSq:       req.ClaimSq,
		ClaimEn:       req.ClaimEn,
		ExplanationSq: req.ExplanationSq,
		ExplanationEn: req.ExplanationEn,
	}
}
