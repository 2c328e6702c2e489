package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings read once at startup. It is passed to
// components at construction time and treated as read-only afterwards.
type Config struct {
	// APIKey is the SambaNova credential for text completion. When empty,
	// note generation short-circuits to the fallback note.
	APIKey string
	// VisionAPIKey is the credential for image analysis. When empty, image
	// findings degrade to the analysis-unavailable sentinel.
	VisionAPIKey string
	BaseURL      string
	ChatModel    string
	VisionModel  string
	Port         string
	UploadDir    string
	AllowOrigins []string
}

const (
	defaultBaseURL = "https://api.sambanova.ai/v1"
	defaultModel   = "Llama-4-Maverick-17B-128E-Instruct"
)

// Load reads configuration from the environment. A .env file is loaded
// first when present, matching how the service is run in development.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIKey:       os.Getenv("SAMBANOVA_API_KEY"),
		VisionAPIKey: os.Getenv("SAMBANOVA_VISION_API_KEY"),
		BaseURL:      getenv("SAMBANOVA_BASE_URL", defaultBaseURL),
		ChatModel:    getenv("SAMBANOVA_MODEL", defaultModel),
		Port:         getenv("PORT", "8080"),
		UploadDir:    getenv("UPLOAD_DIR", "uploads"),
	}
	cfg.VisionModel = getenv("SAMBANOVA_VISION_MODEL", cfg.ChatModel)
	cfg.AllowOrigins = splitOrigins(getenv("CORS_ALLOW_ORIGINS", "*"))
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
