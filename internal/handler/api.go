package handler

import (
	"github.com/infoshqip/internal/config"
	"github.com/infoshqip/internal/notify"
	"github.com/infoshqip/internal/service"
	"github.com/infoshqip/internal/store"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	articles     *service.ArticleService
	jobs         *service.JobService
	myths        *service.MythService
	pages        *service.PageService
	visitors     *service.VisitorService
	analytics    *service.AnalyticsService
	contentViews *service.ContentViewService
	audits       *service.AuditService
	auth         *service.AuthService
	emails       *service.EmailVerificationService
	hub          *notify.Hub

	pageViewsSeen    *store.TTLStore
	contentViewsSeen *store.TTLStore
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg *config.AppConfig, hub *notify.Hub) *API {
	geo := service.NewGeoService(cfg.GeoLookupBaseURL)
	pageViewsSeen := store.NewTTLStore(service.PageViewDedupWindow)
	contentViewsSeen := store.NewTTLStore(service.ContentViewDedupWindow)

	return &API{
		db:           gdb,
		articles:     service.NewArticleService(gdb),
		jobs:         service.NewJobService(gdb),
		myths:        service.NewMythService(gdb),
		pages:        service.NewPageService(gdb),
		visitors:     service.NewVisitorService(gdb, geo, hub),
		analytics:    service.NewAnalyticsService(gdb, pageViewsSeen, hub),
		contentViews: service.NewContentViewService(gdb, contentViewsSeen),
		audits:       service.NewAuditService(gdb),
		auth:         service.NewAuthService(gdb),
		emails:       service.NewEmailVerificationService(cfg.EmailVerifyBaseURL, cfg.EmailVerifyAPIKey),
		hub:          hub,

		pageViewsSeen:    pageViewsSeen,
		contentViewsSeen: contentViewsSeen,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Visitors exposes the visitor service so the server can start its
// background sweeper.
func (a *API) Visitors() *service.VisitorService {
	return a.visitors
}

// DedupStores returns the page view and content view dedup stores so
// the server can start their sweepers.
func (a *API) DedupStores() []*store.TTLStore {
	return []*store.TTLStore{a.pageViewsSeen, a.contentViewsSeen}
}
