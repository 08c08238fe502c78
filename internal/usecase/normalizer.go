package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonModelCharsRegex = regexp.MustCompile(`[^a-z0-9\s+-]`)
	multiSpaceRegex    = regexp.MustCompile(`\s+`)
	digitRegex         = regexp.MustCompile(`[0-9]`)
)

// Normalizer canonicalises free-text shoe references so they can be
// compared: lowercase, brand and filler words stripped, punctuation
// removed, whitespace collapsed, simple plurals folded. Normalisation is
// pure and idempotent.
type Normalizer struct {
	brandPatterns  []*regexp.Regexp
	fillerPatterns []*regexp.Regexp
}

// NewNormalizer builds a normalizer from the brand and filler vocabularies.
// Brands are applied longest first so "new balance" is stripped before any
// shorter brand that could overlap it.
func NewNormalizer(brands, fillers []string) *Normalizer {
	ordered := make([]string, len(brands))
	copy(ordered, brands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	return &Normalizer{
		brandPatterns:  compileWordPatterns(ordered),
		fillerPatterns: compileWordPatterns(fillers),
	}
}

// compileWordPatterns compiles whole-word removal patterns for each term
func compileWordPatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return patterns
}

// Normalize canonicalises a phrase. Empty input yields an empty string;
// the function never fails.
func (n *Normalizer) Normalize(input string) string {
	if input == "" {
		return ""
	}

	str := strings.ToLower(input)

	// Users often omit brand names, so comparisons happen on model names only
	for _, pattern := range n.brandPatterns {
		str = pattern.ReplaceAllString(str, "")
	}
	for _, pattern := range n.fillerPatterns {
		str = pattern.ReplaceAllString(str, "")
	}

	str = nonModelCharsRegex.ReplaceAllString(str, "")
	str = multiSpaceRegex.ReplaceAllString(strings.TrimSpace(str), " ")

	words := strings.Fields(str)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		// Discard isolated single letters without digits (e.g. a stray
		// "t" from voice dictation) but keep tokens like "v4"
		if len(w) == 1 && !digitRegex.MatchString(w) {
			continue
		}
		// Fold simple plurals: trailing single "s", but never "ss" and
		// never Latin "us" endings ("pegasus" must stay "pegasus")
		if len(w) > 3 && strings.HasSuffix(w, "s") &&
			!strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") {
			w = w[:len(w)-1]
		}
		kept = append(kept, w)
	}

	return strings.Join(kept, " ")
}
