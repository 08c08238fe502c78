package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/cinda/backend/internal/domain"
)

// Two independent pattern families cover the two ways dislike sentiment is
// phrased in practice: an explicit negative verb ("didn't like X", "hated
// X") and a copular complaint ("X wasn't for me"). Missing either class
// causes false negatives. RE2 has no lookahead, so the boundary that ends a
// captured phrase is consumed by a non-capturing terminator group instead.
var dislikePatterns = []*regexp.Regexp{
	// "didn't like", "did not like", "don't like", "dislike", "hate"/"hated",
	// "not a fan of", capturing up to punctuation, a copular verb or end of text
	regexp.MustCompile(`(?:didn[’']t like|did not like|don[’']t like|dislike|hate(?:d)?|not a fan of)\s+([\w\s/-]+?)(?:[,.;!]|\s+(?:felt|was|seemed)\b|$)`),
	// "X was(n't) for me", "X didn't work for me", "X wasn't my thing"
	regexp.MustCompile(`(?:the\s+)?([\w\s/-]+?)\s+(?:was(?:n[’']t)? for me|did(?:n[’']t)? work for me|was(?:n[’']t)? my thing)`),
}

// conjunctionSplitRegex separates compound complaints ("Novablast and
// Gel-Cumulus 26") into individual candidates. Conjunctions are anchored on
// word boundaries so words like "endorphin" survive intact.
var conjunctionSplitRegex = regexp.MustCompile(`\s*(?:\bor\b|\band\b|,|/)+\s*`)

// Default gating constants, shared with config defaults
const (
	defaultAcceptThreshold  = 0.8
	defaultMinClarifyLength = 3
)

// DislikeExtractorConfig holds configuration for the dislike extractor
type DislikeExtractorConfig struct {
	AcceptThreshold    float64
	MinClarifyLength   int
	EnableDebugLogging bool
}

// DislikeExtractor scans conversation text for disliked shoe mentions and
// resolves each candidate against the catalog. Confident matches become
// dislikes; everything else is surfaced as a clarification, never silently
// accepted or dropped. Auto-excluding the wrong model is worse than asking
// one extra question.
type DislikeExtractor struct {
	matcher            *MatchingService
	featureKeywords    []string
	acceptThreshold    float64
	minClarifyLength   int
	enableDebugLogging bool
}

// DislikeExtraction is the result of one scan over conversation text
type DislikeExtraction struct {
	Dislikes       []string
	Clarifications []domain.DislikeClarification
}

// NewDislikeExtractor creates a new dislike extractor. featureKeywords are
// the terms that mark a candidate as a complaint about an attribute (laces,
// fit, price) rather than a product.
func NewDislikeExtractor(matcher *MatchingService, featureKeywords []string, config DislikeExtractorConfig) *DislikeExtractor {
	threshold := config.AcceptThreshold
	if threshold <= 0 {
		threshold = defaultAcceptThreshold
	}

	minLength := config.MinClarifyLength
	if minLength <= 0 {
		minLength = defaultMinClarifyLength
	}

	lowered := make([]string, 0, len(featureKeywords))
	for _, kw := range featureKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}

	return &DislikeExtractor{
		matcher:            matcher,
		featureKeywords:    lowered,
		acceptThreshold:    threshold,
		minClarifyLength:   minLength,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Extract scans the full conversation text and returns confirmed dislikes
// (normalised model names, insertion order, no duplicates) plus
// clarification requests for candidates that could not be confidently
// resolved.
func (e *DislikeExtractor) Extract(text string, shoes []domain.Shoe) DislikeExtraction {
	result := DislikeExtraction{
		Dislikes:       []string{},
		Clarifications: []domain.DislikeClarification{},
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	lowered := strings.ToLower(text)
	seen := make(map[string]bool)

	for _, pattern := range dislikePatterns {
		for _, match := range pattern.FindAllStringSubmatch(lowered, -1) {
			for _, part := range conjunctionSplitRegex.Split(match[1], -1) {
				candidate := strings.TrimSpace(part)
				if candidate == "" || e.isFeatureComplaint(candidate) {
					continue
				}

				matchResult := e.matcher.IdentifyModel(candidate, shoes)

				if e.enableDebugLogging {
					log.Printf("[DISLIKE] candidate=%q model=%q confidence=%.2f",
						candidate, matchResult.Model, matchResult.Confidence)
				}

				if matchResult.Model != "" && matchResult.Confidence >= e.acceptThreshold {
					if !seen[matchResult.Model] {
						seen[matchResult.Model] = true
						result.Dislikes = append(result.Dislikes, matchResult.Model)
					}
				} else if len(candidate) >= e.minClarifyLength {
					result.Clarifications = append(result.Clarifications, domain.DislikeClarification{
						Input:      candidate,
						Suggestion: matchResult.Model,
						Confidence: matchResult.Confidence,
					})
				}
			}
		}
	}

	return result
}

// isFeatureComplaint reports whether a candidate refers to a shoe attribute
// (laces, fit, price) rather than a shoe. Those must never enter the
// dislike list.
func (e *DislikeExtractor) isFeatureComplaint(candidate string) bool {
	for _, kw := range e.featureKeywords {
		if strings.Contains(candidate, kw) {
			return true
		}
	}
	return false
}
