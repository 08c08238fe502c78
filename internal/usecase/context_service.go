package usecase

import (
	"fmt"
	"strings"

	"github.com/cinda/backend/internal/domain"
)

// fieldDetector pairs a field value with the phrases that imply it.
// Detectors for one field are evaluated in priority order, first match
// wins; fields are independent of one another.
type fieldDetector struct {
	value   string
	phrases []string
}

var goalDetectors = []fieldDetector{
	{"10k race", []string{"10k"}},
	{"half marathon", []string{"half marathon"}},
	{"marathon", []string{"marathon"}},
	{"long runs", []string{"long run"}},
	{"daily training", []string{"training", "all round"}},
}

var feelDetectors = []fieldDetector{
	{"bouncy", []string{"bouncy", "springy", "responsive"}},
	{"soft", []string{"soft", "plush", "cushioned"}},
	{"firm", []string{"firm", "ground feel"}},
}

var supportDetectors = []fieldDetector{
	{"neutral", []string{"neutral"}},
	{"stability", []string{"stability", "support", "overpronation"}},
}

var shoeCountDetectors = []fieldDetector{
	{"rotation", []string{"rotation", "multiple shoes", "two shoes"}},
}

var budgetDetectors = []fieldDetector{
	{"budget-conscious", []string{
		"budget", "cheap", "don’t want to spend", "don't want to spend",
		"not looking to spend", "affordable", "price sensitive", "expensive",
	}},
}

var raceIntentPhrases = []string{
	"pb", "personal best", "go all out", "as fast as possible",
	"max performance", "race day", "aggressive", "carbon plate", "plated shoe",
}

// Follow-up questions, highest priority first
const (
	goalQuestion    = "What kind of running are you mainly using the shoes for? (e.g. daily training, long runs, racing)"
	feelQuestion    = "Do you prefer something soft and cushioned, or more firm and responsive underfoot?"
	supportQuestion = "Do you usually run in neutral shoes, or do you benefit from added stability or support?"
)

// ContextService rebuilds the full conversation context from scratch on
// every turn. Nothing is persisted between calls; history must be replayed
// in full each time.
type ContextService struct {
	extractor *DislikeExtractor
	catalog   domain.ShoeCatalog
}

// NewContextService creates a new context service
func NewContextService(extractor *DislikeExtractor, catalog domain.ShoeCatalog) *ContextService {
	return &ContextService{
		extractor: extractor,
		catalog:   catalog,
	}
}

// BuildContext parses the chat history plus the latest message into a
// conversation context. Fields that cannot be determined stay empty rather
// than defaulting to a guess. The function performs no I/O and never fails.
func (s *ContextService) BuildContext(history []domain.ChatMessage, message string) *domain.ConversationContext {
	text := conversationText(history, message)

	context := &domain.ConversationContext{
		Dislikes:              []string{},
		DislikeClarifications: []domain.DislikeClarification{},
	}

	context.Goal = detectField(text, goalDetectors)
	context.PreferredFeel = detectField(text, feelDetectors)
	context.SupportType = detectField(text, supportDetectors)
	context.ShoeCount = detectField(text, shoeCountDetectors)
	context.Budget = detectField(text, budgetDetectors)
	context.RaceIntent = containsAny(text, raceIntentPhrases)

	extraction := s.extractor.Extract(text, s.catalog.All())
	context.Dislikes = extraction.Dislikes
	context.DislikeClarifications = extraction.Clarifications

	return context
}

// MissingContext inspects a context and returns the highest-priority
// follow-up question still needed: goal, then feel, then support type, then
// any pending dislike clarification. The second return value is false when
// the context is complete enough. Pure projection, no mutation.
func (s *ContextService) MissingContext(context *domain.ConversationContext) (string, bool) {
	if context.Goal == "" {
		return goalQuestion, true
	}
	if context.PreferredFeel == "" {
		return feelQuestion, true
	}
	if context.SupportType == "" {
		return supportQuestion, true
	}
	if len(context.DislikeClarifications) > 0 {
		described := make([]string, 0, len(context.DislikeClarifications))
		for _, c := range context.DislikeClarifications {
			desc := fmt.Sprintf("%q", c.Input)
			if c.Suggestion != "" {
				desc += fmt.Sprintf(" (did you mean %s?)", c.Suggestion)
			}
			described = append(described, desc)
		}
		return fmt.Sprintf("Just to clarify, could you confirm which shoe you disliked? I detected %s.",
			strings.Join(described, ", ")), true
	}
	return "", false
}

// conversationText joins history contents and the latest message, oldest
// first, into one lower-cased blob
func conversationText(history []domain.ChatMessage, message string) string {
	parts := make([]string, 0, len(history)+1)
	for _, m := range history {
		parts = append(parts, m.Content)
	}
	parts = append(parts, message)
	return strings.ToLower(strings.Join(parts, " "))
}

// detectField returns the value of the first detector whose phrase appears
// in the text, or empty when none match
func detectField(text string, detectors []fieldDetector) string {
	for _, d := range detectors {
		if containsAny(text, d.phrases) {
			return d.value
		}
	}
	return ""
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
