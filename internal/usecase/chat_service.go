package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/cinda/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	cacheKeySpacesRegex  = regexp.MustCompile(`\s+`)
)

// systemPromptTemplate frames the assistant persona; %s receives the
// filtered shoe descriptions
const systemPromptTemplate = `You're Cinda 👟 — a friendly, thoughtful, and slightly cheeky running shoe expert.

You help runners choose the best shoe *from the provided database only*. Never say you're using a database or list — just speak naturally, like a real expert. NEVER invent shoe names.

Here's what you must always do:
- Keep track of what the user has said: their goals (e.g. race vs training), dislikes, foot shape, experience level, and more. Use that context when responding.
- Recommend only 1–3 shoes per message, *never more*, unless the user explicitly asks for multiple options across categories (e.g. race + daily + tempo).
- Give your reasoning. Don't just list options — explain why each one fits and what trade-offs are involved.
- Be honest about limitations. If a shoe isn't ideal for a specific use (e.g. racing), say so. Suggest better alternatives where helpful and explain why. Never oversell a shoe just to fill a gap.
- If the user dislikes a shoe (e.g. "didn't like the Glycerin"), learn from that and don't suggest similar shoes — unless you ask why they disliked it first.
- Avoid listing specs (e.g. stack height, weight) unless the user asks or it's crucial to your reasoning. Offer to share details if they want more.
- Speak like a human. Use charm, contractions, and stay conversational — not robotic.
- Adapt to the user's experience level. Use simpler language if they seem new to running.
- Always ask at least one smart follow-up question if the prompt is vague or missing key info (like running goals, terrain, feel preference, fit issues, etc).
- Never repeat shoes that have already been suggested unless you're revisiting them deliberately.
- Never make up new shoes or brands. Stick strictly to what's in the list below.

Shoes you can recommend:
---
%s
---`

// ChatServiceConfig holds configuration for the chat service
type ChatServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// ChatService orchestrates a conversation turn: rebuild the context,
// determine any follow-up, filter the catalog, and ask the LLM for a reply.
// Identical turns are served from cache.
type ChatService struct {
	cache              domain.CacheRepository
	llm                domain.ChatClient
	catalog            domain.ShoeCatalog
	contextService     *ContextService
	filterService      *FilterService
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewChatService creates a new chat service with dependencies
func NewChatService(
	cache domain.CacheRepository,
	llm domain.ChatClient,
	catalog domain.ShoeCatalog,
	contextService *ContextService,
	filterService *FilterService,
	config ChatServiceConfig,
) *ChatService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	return &ChatService{
		cache:              cache,
		llm:                llm,
		catalog:            catalog,
		contextService:     contextService,
		filterService:      filterService,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Chat handles one conversation turn.
// Flow: build context -> follow-up check -> check cache -> filter catalog ->
// build prompt -> LLM call -> cache -> return
func (s *ChatService) Chat(ctx context.Context, request *domain.ChatRequest) (*domain.ChatResponse, error) {
	if request == nil || request.Message == "" {
		return nil, domain.ErrInvalidRequest
	}

	conversation := s.contextService.BuildContext(request.ChatHistory, request.Message)
	followUp, _ := s.contextService.MissingContext(conversation)

	if s.enableDebugLogging {
		log.Printf("[CHAT] context: goal=%q feel=%q support=%q dislikes=%v raceIntent=%v",
			conversation.Goal, conversation.PreferredFeel, conversation.SupportType,
			conversation.Dislikes, conversation.RaceIntent)
		if followUp != "" {
			log.Printf("[CHAT] follow-up question: %s", followUp)
		}
	}

	cacheKey := s.generateCacheKey(request)

	// Try cache first
	if reply, err := s.cache.Get(ctx, cacheKey); err == nil && reply != "" {
		return &domain.ChatResponse{
			Reply:    reply,
			FollowUp: followUp,
			Context:  conversation,
			Source:   "Cache",
		}, nil
	}

	text := conversationText(request.ChatHistory, request.Message)
	filtered := s.filterService.Filter(s.catalog.All(), conversation, text)

	if s.enableDebugLogging {
		names := make([]string, len(filtered))
		for i, shoe := range filtered {
			names[i] = shoe.Model
		}
		log.Printf("[CHAT] %d shoes offered for recommendation: %v", len(filtered), names)
	}

	reply, err := s.llm.CreateChatCompletion(ctx, s.buildMessages(request, filtered, followUp))
	if err != nil {
		// Keep the client's sentinel so the delivery layer can map
		// rate limiting and upstream failures to distinct statuses
		if errors.Is(err, domain.ErrRateLimited) || errors.Is(err, domain.ErrOpenAIFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrOpenAIFailure, err)
	}

	// Cache the reply; a cache failure never fails the request
	if err := s.cache.Set(ctx, cacheKey, reply, s.cacheTTL); err != nil && s.enableDebugLogging {
		log.Printf("[CHAT] failed to cache reply: %v", err)
	}

	return &domain.ChatResponse{
		Reply:    reply,
		FollowUp: followUp,
		Context:  conversation,
		Source:   "OpenAI",
	}, nil
}

// buildMessages assembles the full prompt: system message with the filtered
// catalog, replayed history, and the user turn with any follow-up appended
// so the model asks it naturally.
func (s *ChatService) buildMessages(request *domain.ChatRequest, shoes []domain.Shoe, followUp string) []domain.ChatMessage {
	messages := make([]domain.ChatMessage, 0, len(request.ChatHistory)+2)
	messages = append(messages, domain.ChatMessage{
		Role:    "system",
		Content: fmt.Sprintf(systemPromptTemplate, describeShoes(shoes)),
	})
	messages = append(messages, request.ChatHistory...)

	userContent := request.Message
	if followUp != "" {
		userContent += "\n\n" + followUp
	}
	messages = append(messages, domain.ChatMessage{Role: "user", Content: userContent})

	return messages
}

// describeShoes renders catalog entries for the system prompt
func describeShoes(shoes []domain.Shoe) string {
	described := make([]string, len(shoes))
	for i, shoe := range shoes {
		notes := shoe.Notes
		if notes == "" {
			notes = "None"
		}
		described[i] = fmt.Sprintf(
			"Brand: %s\nModel: %s\nTypes: %s\nWeight: %.0fg\nHeel Height: %gmm\nForefoot Height: %gmm\nDrop: %gmm\nNotes: %s",
			shoe.Brand, shoe.Model, strings.Join(shoe.Types, ", "),
			shoe.Weight, shoe.HeelHeight, shoe.ForefootHeight, shoe.Drop, notes,
		)
	}
	return strings.Join(described, "\n\n")
}

// generateCacheKey creates a normalized cache key from the full turn.
// Format: "chat:{normalized_history_and_message}"
func (s *ChatService) generateCacheKey(request *domain.ChatRequest) string {
	text := conversationText(request.ChatHistory, request.Message)
	return "chat:" + normalizeForCacheKey(text)
}

// normalizeForCacheKey normalizes a string for use as cache key component
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = cacheKeySpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
