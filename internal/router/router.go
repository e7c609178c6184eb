package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/config"
	"github.com/infoshqip/internal/handler"
)

// SetupRouter configures the gin engine: session and CORS middleware,
// the public content API, the tracking beacons and the obfuscated admin
// surface.
func SetupRouter(api *handler.API, cfg *config.AppConfig) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   12 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("infoshqip_session", store))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/api")
	{
		public.GET("/articles", api.ListArticles)
		public.GET("/articles/categories", api.ListArticleCategories)
		public.GET("/articles/:id", api.GetArticle)
		public.GET("/jobs", api.ListJobs)
		public.GET("/jobs/:id", api.GetJob)
		public.GET("/myths", api.ListMyths)
		public.GET("/myths/:id", api.GetMyth)
		public.GET("/pages/:slug", api.GetPage)
		public.GET("/trending", api.Trending)

		track := public.Group("/track")
		{
			track.POST("/visit", api.TrackVisit)
			track.POST("/heartbeat", api.Heartbeat)
			track.POST("/pageview", api.TrackPageView)
			track.POST("/content-view", api.TrackContentView)
		}
	}

	// The admin surface lives under a non-guessable prefix. Nothing on
	// the public site links to it.
	admin := r.Group(cfg.AdminPathPrefix)
	{
		admin.POST("/login", api.Login)
		admin.POST("/verify-email", api.VerifyEmail)

		auth := admin.Group("")
		auth.Use(handler.AuthRequired(), handler.AdminRequired())
		{
			auth.POST("/logout", api.Logout)
			auth.GET("/me", api.Me)

			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/articles", api.AdminListArticles)
				adminAPI.GET("/articles/:id", api.AdminGetArticle)
				adminAPI.POST("/articles", api.AdminCreateArticle)
				adminAPI.PUT("/articles/:id", api.AdminUpdateArticle)
				adminAPI.DELETE("/articles/:id", api.AdminDeleteArticle)

				adminAPI.GET("/jobs", api.AdminListJobs)
				adminAPI.GET("/jobs/:id", api.AdminGetJob)
				adminAPI.POST("/jobs", api.AdminCreateJob)
				adminAPI.PUT("/jobs/:id", api.AdminUpdateJob)
				adminAPI.DELETE("/jobs/:id", api.AdminDeleteJob)

				adminAPI.GET("/myths", api.AdminListMyths)
				adminAPI.GET("/myths/:id", api.AdminGetMyth)
				adminAPI.POST("/myths", api.AdminCreateMyth)
				adminAPI.PUT("/myths/:id", api.AdminUpdateMyth)
				adminAPI.DELETE("/myths/:id", api.AdminDeleteMyth)

				adminAPI.GET("/pages", api.AdminListPages)
				adminAPI.PUT("/pages/:slug", api.AdminSavePage)

				adminAPI.GET("/audit-logs", api.AdminListAuditLogs)

				analytics := adminAPI.Group("/analytics")
				{
					analytics.GET("/summary", api.AnalyticsSummary)
					analytics.GET("/visitors", api.ActiveVisitors)
					analytics.GET("/daily", api.DailyTrend)
					analytics.GET("/peak-hours", api.PeakHours)
					analytics.GET("/top-pages", api.TopPages)
					analytics.GET("/trending", api.Trending)
					analytics.GET("/stream", api.StreamEvents)
				}
			}
		}
	}

	return r
}
