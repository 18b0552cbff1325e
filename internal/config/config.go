package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	SMTP SMTP

	// Recipients for internal notifications.
	SalesEmail string
	AdminEmail string

	// Used to build links in outbound email.
	FrontendURL string
	APIBaseURL  string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
		SalesEmail:           getenv("SALES_EMAIL", "sales@ceerionenergy.com"),
		AdminEmail:           getenv("ADMIN_EMAIL", "info@ceerionenergy.com"),
		FrontendURL:          getenv("FRONTEND_URL", "http://localhost:5173"),
		APIBaseURL:           getenv("API_BASE_URL", "http://localhost:8080"),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.SMTP = SMTP{
		Host:     getenv("SMTP_HOST", "smtp.gmail.com"),
		Port:     getenvInt("SMTP_PORT", 587),
		User:     getenv("SMTP_USER", ""),
		Password: getenv("SMTP_PASSWORD", ""),
	}
	cfg.SMTP.From = getenv("SMTP_FROM", cfg.SMTP.User)

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
