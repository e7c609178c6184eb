package main

import (
	"fmt"
	"log"

	"github.com/infoshqip/internal/config"
	"github.com/infoshqip/internal/db"
)

func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	email := cfg.AdminEmail
	password := cfg.AdminPassword
	if email == "" {
		email = "admin@infoshqip.local"
	}
	if password == "" {
		password = "admin123"
	}

	if err := db.EnsureAdminUser(email, password); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	fmt.Println("admin user ready")
	fmt.Printf("email: %s\n", email)
}
