package main

import (
	"log"
	"time"

	"medcopilot/internal/config"
	"medcopilot/internal/core"
	httpserver "medcopilot/internal/http"
	"medcopilot/internal/llm"
	"medcopilot/internal/upload"
)

func main() {
	cfg := config.Load()
	if cfg.APIKey == "" {
		log.Println("SAMBANOVA_API_KEY not set; note generation will return fallback content")
	}
	if cfg.VisionAPIKey == "" {
		log.Println("SAMBANOVA_VISION_API_KEY not set; image analysis disabled")
	}

	store, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}
	scheduler := store.StartSweep(30 * time.Minute)
	defer scheduler.Stop()

	factory := func(apiKey string) llm.Client {
		return llm.NewSambaNovaClient(apiKey, cfg.BaseURL, cfg.ChatModel, cfg.VisionModel)
	}
	pipeline := core.NewPipeline(cfg, factory)

	srv := httpserver.NewServer(pipeline, store)
	router := httpserver.NewRouter(srv, cfg.AllowOrigins)

	addr := ":" + cfg.Port
	log.Printf("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
