package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cinda/backend/config"
	httpDelivery "github.com/cinda/backend/internal/delivery/http"
	"github.com/cinda/backend/internal/infrastructure/cache"
	"github.com/cinda/backend/internal/infrastructure/catalog"
	"github.com/cinda/backend/internal/infrastructure/openai"
	"github.com/cinda/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Cinda Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	shoeCatalog, err := catalog.NewStatic()
	if err != nil {
		log.Fatalf("Failed to load shoe catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d shoes", len(shoeCatalog.All()))

	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.RateLimit.OpenAI)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		openaiClient.SetDebug(true)
		log.Printf("OpenAI client debug mode enabled")
	}

	log.Printf("OpenAI API configured: %s (model: %s)", cfg.OpenAI.BaseURL, cfg.OpenAI.Model)

	// Initialize usecase layer
	normalizer := usecase.NewNormalizer(cfg.Vocab.Brands, cfg.Vocab.FillerWords)
	matcher := usecase.NewMatchingService(normalizer, usecase.MatchConfig{
		PrefixBoost:        cfg.Matching.PrefixBoost,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})
	extractor := usecase.NewDislikeExtractor(matcher, cfg.Vocab.FeatureKeywords, usecase.DislikeExtractorConfig{
		AcceptThreshold:    cfg.Matching.AcceptThreshold,
		MinClarifyLength:   cfg.Matching.MinClarifyLength,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})
	contextService := usecase.NewContextService(extractor, shoeCatalog)
	filterService := usecase.NewFilterService()
	chatService := usecase.NewChatService(
		memoryCache,
		openaiClient,
		shoeCatalog,
		contextService,
		filterService,
		usecase.ChatServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: accept=%.2f, boost=%.2f, debug=%v",
		cfg.Matching.AcceptThreshold,
		cfg.Matching.PrefixBoost,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(chatService, contextService, shoeCatalog)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
