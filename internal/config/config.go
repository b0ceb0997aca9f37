package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Generation API (sibling image/audio generation service)
	GenerationAPIBaseURL string
	GenerationAPIKey     string

	// Render API (video render pipeline)
	RenderAPIBaseURL   string
	RenderAPIKey       string
	RenderWebhookToken string
	WebhookCallbackURL string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// S3 video storage
	S3Endpoint    string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
	S3VideoBucket string
	S3PublicURL   string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	// .env is optional; deployments set env vars directly
	_ = godotenv.Load()

	cfg := &Config{
		GenerationAPIBaseURL: getEnv("GENERATION_API_BASE_URL", "http://localhost:3000/api"),
		GenerationAPIKey:     getEnv("GENERATION_API_KEY", ""),

		RenderAPIBaseURL:   getEnv("RENDER_API_BASE_URL", ""),
		RenderAPIKey:       getEnv("RENDER_API_KEY", ""),
		RenderWebhookToken: getEnv("RENDER_WEBHOOK_TOKEN", ""),
		WebhookCallbackURL: getEnv("WEBHOOK_CALLBACK_URL", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "generated-assets"),

		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
		S3VideoBucket: getEnv("S3_VIDEO_BUCKET", "rendered-videos"),
		S3PublicURL:   getEnv("S3_PUBLIC_URL", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.RenderAPIBaseURL != "" && c.WebhookCallbackURL == "" {
		return fmt.Errorf("WEBHOOK_CALLBACK_URL is required when RENDER_API_BASE_URL is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
