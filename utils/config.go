package utils

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type R2Config struct {
	AccountID       string `validate:"required_with=Bucket"`
	AccessKeyID     string `validate:"required_with=Bucket"`
	AccessKeySecret string `validate:"required_with=Bucket"`
	Bucket          string
	CDNBaseURL      string `validate:"omitempty,url"`
}

// Enabled reports whether proof photos should be uploaded.
func (c R2Config) Enabled() bool { return c.Bucket != "" }

type SeedRiderConfig struct {
	Name     string
	Email    string `validate:"omitempty,email"`
	Password string `validate:"required_with=Email"`
	Phone    string
}

type Config struct {
	AppEnv            string        `validate:"oneof=development production test"`
	Port              string        `validate:"required,numeric"`
	DatabaseURL       string        `validate:"required"`
	GatewayToken      string        `validate:"required"`
	AllowedOrigins    []string      `validate:"min=1,dive,required"`
	ReconcileInterval time.Duration `validate:"gte=0"`
	R2                R2Config
	SeedRider         SeedRiderConfig
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// the logger is not built yet
		log.Println("[CONFIG] no .env file found, reading environment variables directly")
	}

	interval := 15 * time.Minute
	if raw := os.Getenv("RECONCILE_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("RECONCILE_INTERVAL: %w", err)
		}
		interval = d
	}

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "5200"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GatewayToken:      os.Getenv("GATEWAY_SERVICE_TOKEN"),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		ReconcileInterval: interval,
		R2: R2Config{
			AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
			Bucket:          os.Getenv("R2_BUCKET_NAME"),
			CDNBaseURL:      os.Getenv("CDN_BASE_URL"),
		},
		SeedRider: SeedRiderConfig{
			Name:     getEnv("SEED_RIDER_NAME", "Test Rider"),
			Email:    os.Getenv("SEED_RIDER_EMAIL"),
			Password: os.Getenv("SEED_RIDER_PASSWORD"),
			Phone:    os.Getenv("SEED_RIDER_PHONE"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
