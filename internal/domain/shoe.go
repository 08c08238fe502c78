package domain

// Shoe represents a single model in the running shoe catalog
type Shoe struct {
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Types          []string `json:"types"`
	HeelHeight     float64  `json:"heelHeight"`     // mm
	ForefootHeight float64  `json:"forefootHeight"` // mm
	Drop           float64  `json:"drop"`           // mm
	Weight         float64  `json:"weight"`         // grams
	ReleaseYear    int      `json:"releaseYear"`
	RaceReadiness  string   `json:"raceReadiness"` // "yes", "no" or "versatile"
	Plated         string   `json:"plated,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// ChatMessage is a single turn in the conversation history
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// ChatRequest represents an inbound chat turn
type ChatRequest struct {
	Message     string        `json:"message" binding:"required"`
	ChatHistory []ChatMessage `json:"chatHistory,omitempty"`
}

// ChatResponse is the assistant reply plus the context that produced it
type ChatResponse struct {
	Reply    string               `json:"reply"`
	FollowUp string               `json:"followUp,omitempty"`
	Context  *ConversationContext `json:"context,omitempty"`
	Source   string               `json:"source"` // "OpenAI" or "Cache"
}

// AffiliateLink points at a retailer search page for a shoe
type AffiliateLink struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type"` // "retailer" or "resource"
}

// ShoeListing is a catalog entry with its purchase links attached
type ShoeListing struct {
	Shoe  Shoe            `json:"shoe"`
	Links []AffiliateLink `json:"links"`
}
