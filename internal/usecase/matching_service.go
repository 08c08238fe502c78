package usecase

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/cinda/backend/internal/domain"
)

// standaloneNumberRegex matches standalone numeric tokens ("41" but not "v4")
var standaloneNumberRegex = regexp.MustCompile(`\b\d+\b`)

// Default matching constants. Empirical values; keep them tunable rather
// than reading semantic meaning into them.
const (
	defaultPrefixBoost = 0.9
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	PrefixBoost        float64
	EnableDebugLogging bool
}

// MatchingService maps candidate phrases onto catalog models using
// normalised Levenshtein similarity with a prefix-aware boost.
type MatchingService struct {
	normalizer         *Normalizer
	prefixBoost        float64
	enableDebugLogging bool

	// Normalising every model name on every call is the dominant cost of
	// matching, so normalised forms are memoised. This cannot change
	// results: normalisation is deterministic.
	mu               sync.RWMutex
	normalizedModels map[string]string
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(normalizer *Normalizer, config MatchConfig) *MatchingService {
	boost := config.PrefixBoost
	if boost <= 0 {
		boost = defaultPrefixBoost
	}

	return &MatchingService{
		normalizer:         normalizer,
		prefixBoost:        boost,
		enableDebugLogging: config.EnableDebugLogging,
		normalizedModels:   make(map[string]string),
	}
}

// IdentifyModel finds the catalog model a raw phrase most likely refers to.
// It always returns a well-formed result: a nil-model result with a
// diagnostic reason when the input normalises to nothing, the catalog is
// empty or no entry scores above zero, otherwise the best-scoring model
// with its confidence. Ties keep the first catalog entry encountered.
func (s *MatchingService) IdentifyModel(raw string, shoes []domain.Shoe) domain.MatchResult {
	cleaned := s.normalizer.Normalize(raw)
	if cleaned == "" {
		return domain.MatchResult{Confidence: 0, Reason: "empty after normalisation"}
	}
	if len(shoes) == 0 {
		return domain.MatchResult{Confidence: 0, Reason: "no models available"}
	}

	bestModel := ""
	bestScore := 0.0 // a zero-similarity entry is no better than no match

	for _, shoe := range shoes {
		modelName := s.normalizedModel(shoe.Model)
		score := similarity(cleaned, modelName)

		// If candidate and model are prefixes of one another once
		// standalone numerals are ignored, raise the score: a bare stem
		// ("pegasus") should strongly match its numbered variant
		// ("pegasus 41") without the numeral cost skewing edit distance.
		candNoNums := strings.TrimSpace(standaloneNumberRegex.ReplaceAllString(cleaned, ""))
		modelNoNums := strings.TrimSpace(standaloneNumberRegex.ReplaceAllString(modelName, ""))
		if candNoNums != "" && modelNoNums != "" &&
			(strings.HasPrefix(modelNoNums, candNoNums) || strings.HasPrefix(candNoNums, modelNoNums)) {
			if score < s.prefixBoost {
				score = s.prefixBoost
			}
		}

		if s.enableDebugLogging {
			log.Printf("[MATCH] candidate=%q model=%q score=%.2f", cleaned, modelName, score)
		}

		if score > bestScore {
			bestScore = score
			bestModel = modelName
		}
	}

	if bestModel == "" {
		return domain.MatchResult{Confidence: 0, Reason: "no match found"}
	}

	return domain.MatchResult{
		Model:      bestModel,
		Confidence: bestScore,
		Reason:     fmt.Sprintf("matched %q to %q with similarity %.2f", cleaned, bestModel, bestScore),
	}
}

// normalizedModel returns the memoised normalised form of a model name
func (s *MatchingService) normalizedModel(model string) string {
	s.mu.RLock()
	cached, ok := s.normalizedModels[model]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	normalized := s.normalizer.Normalize(model)

	s.mu.Lock()
	s.normalizedModels[model] = normalized
	s.mu.Unlock()

	return normalized
}
