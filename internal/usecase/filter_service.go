package usecase

import (
	"strings"

	"github.com/cinda/backend/internal/domain"
)

// Stack-height and weight cutoffs used by the feel rules (mm / grams)
const (
	softMinHeelHeight = 25.0
	firmMaxHeelHeight = 35.0
	bouncyMaxWeight   = 290.0
)

// FilterService narrows the catalog to shoes compatible with the parsed
// context before they are offered for recommendation. It never modifies
// its inputs.
type FilterService struct{}

// NewFilterService creates a new filter service
func NewFilterService() *FilterService {
	return &FilterService{}
}

// Filter returns the shoes that survive the context rules: disliked models
// are excluded, support preferences constrain stability types, feel
// preferences constrain geometry, race intent removes non-race-ready
// options, and race-distance goals re-admit racing and tempo shoes.
func (s *FilterService) Filter(shoes []domain.Shoe, context *domain.ConversationContext, text string) []domain.Shoe {
	text = strings.ToLower(text)
	filtered := make([]domain.Shoe, 0, len(shoes))

	for _, shoe := range shoes {
		if s.matches(shoe, context, text) {
			filtered = append(filtered, shoe)
		}
	}

	return filtered
}

func (s *FilterService) matches(shoe domain.Shoe, context *domain.ConversationContext, text string) bool {
	types := make([]string, len(shoe.Types))
	for i, t := range shoe.Types {
		types[i] = strings.ToLower(t)
	}

	match := true

	if context.RaceIntent && shoe.RaceReadiness == "no" {
		match = false
	}

	fullName := strings.ToLower(shoe.Brand + " " + shoe.Model)
	modelOnly := strings.ToLower(shoe.Model)
	for _, dislike := range context.Dislikes {
		// Trailing plural may survive in older stored dislikes
		cleaned := strings.TrimSpace(strings.TrimSuffix(dislike, "s"))
		if cleaned == "" {
			continue
		}
		if strings.Contains(fullName, cleaned) ||
			strings.Contains(modelOnly, cleaned) ||
			strings.Contains(cleaned, modelOnly) {
			match = false
		}
	}

	if strings.Contains(text, "support") || strings.Contains(text, "overpronation") {
		if !containsType(types, "stability") {
			match = false
		}
	}
	if strings.Contains(text, "neutral") {
		if containsType(types, "stability") {
			match = false
		}
	}

	switch context.PreferredFeel {
	case "soft":
		if shoe.HeelHeight < softMinHeelHeight {
			match = false
		}
	case "firm":
		if shoe.HeelHeight > firmMaxHeelHeight {
			match = false
		}
	case "bouncy":
		if shoe.Weight > bouncyMaxWeight {
			match = false
		}
	}

	// Race-distance goals re-admit racing and tempo shoes regardless of
	// the rules above
	switch context.Goal {
	case "10k race", "half marathon", "marathon":
		if containsType(types, "racing") || containsType(types, "tempo") {
			match = true
		}
	}

	return match
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
