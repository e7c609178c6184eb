package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig collects everything needed to run the service.
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabasePath       string
	SessionSecret      string
	GinMode            string
	AdminPathPrefix    string
	AdminEmail         string
	AdminPassword      string
	AllowedOrigins     []string
	GeoLookupBaseURL   string
	EmailVerifyBaseURL string
	EmailVerifyAPIKey  string
}

// Load reads the application configuration from environment variables and
// provides safe defaults for anything missing.
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "infoshqip.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "infoshqip-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	// The CMS lives behind a non-guessable path rather than /admin.
	adminPathPrefix := strings.TrimSpace(os.Getenv("ADMIN_PATH_PREFIX"))
	if adminPathPrefix == "" {
		adminPathPrefix = "/cms-0x9f3b"
	}
	if !strings.HasPrefix(adminPathPrefix, "/") {
		adminPathPrefix = "/" + adminPathPrefix
	}

	geoLookupBaseURL := strings.TrimSpace(os.Getenv("GEO_LOOKUP_BASE_URL"))
	if geoLookupBaseURL == "" {
		geoLookupBaseURL = "https://ipapi.co"
	}

	emailVerifyBaseURL := strings.TrimSpace(os.Getenv("EMAIL_VERIFY_BASE_URL"))
	if emailVerifyBaseURL == "" {
		emailVerifyBaseURL = "https://emailvalidation.abstractapi.com/v1"
	}

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DatabasePath:       databasePath,
		SessionSecret:      sessionSecret,
		GinMode:            ginMode,
		AdminPathPrefix:    adminPathPrefix,
		AdminEmail:         strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword:      strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		AllowedOrigins:     splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		GeoLookupBaseURL:   geoLookupBaseURL,
		EmailVerifyBaseURL: emailVerifyBaseURL,
		EmailVerifyAPIKey:  strings.TrimSpace(os.Getenv("EMAIL_VERIFY_API_KEY")),
	}
}

func splitOrigins(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{"http://localhost:5173", "http://localhost:3000"}
	}

	parts := strings.Split(trimmed, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
