package domain

// MatchResult represents the outcome of matching a phrase against the catalog.
// Model is the normalized model name, or empty when nothing could be matched.
type MatchResult struct {
	Model      string  `json:"model,omitempty"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// DislikeClarification is an unresolved dislike candidate that needs a
// follow-up question instead of a silent exclusion.
type DislikeClarification struct {
	Input      string  `json:"input"`
	Suggestion string  `json:"suggestion,omitempty"`
	Confidence float64 `json:"confidence"`
}

// ConversationContext holds everything extracted from one conversation turn.
// Fields that could not be determined stay empty rather than guessed.
type ConversationContext struct {
	Goal                  string                 `json:"goal,omitempty"`
	PreferredFeel         string                 `json:"preferredFeel,omitempty"`
	SupportType           string                 `json:"supportType,omitempty"`
	ShoeCount             string                 `json:"shoeCount,omitempty"`
	Budget                string                 `json:"budget,omitempty"`
	Dislikes              []string               `json:"dislikes"`
	DislikeClarifications []DislikeClarification `json:"dislikeClarifications"`
	RaceIntent            bool                   `json:"raceIntent"`
}
