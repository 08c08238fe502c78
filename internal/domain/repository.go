package domain

import (
	"context"
	"time"
)

// ShoeCatalog provides read-only access to the shoe catalog.
// Order is stable; matching relies on it for deterministic tie-breaking.
type ShoeCatalog interface {
	All() []Shoe
}

// ChatClient defines the interface for the LLM collaborator
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
