package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infoshqip/internal/config"
	"github.com/infoshqip/internal/db"
	"github.com/infoshqip/internal/handler"
	"github.com/infoshqip/internal/notify"
	"github.com/infoshqip/internal/router"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine, the environment may be set directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := db.EnsureAdminUser(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to ensure admin user: %v", err)
		}
	}

	hub := notify.NewHub(16)
	api := handler.NewAPI(db.DB, &cfg, hub)

	stopVisitorSweeper := api.Visitors().StartSweeper(5 * time.Minute)
	defer stopVisitorSweeper()
	for _, dedup := range api.DedupStores() {
		stop := dedup.StartSweeper(time.Hour)
		defer stop()
	}

	r := router.SetupRouter(api, &cfg)
	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
