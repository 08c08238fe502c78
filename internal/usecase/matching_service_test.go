package usecase

import (
	"testing"

	"github.com/cinda/backend/internal/domain"
)

// Shared test catalog for matching and extraction tests
func testShoes() []domain.Shoe {
	return []domain.Shoe{
		{Brand: "Nike", Model: "Pegasus 41"},
		{Brand: "Asics", Model: "Novablast 4"},
		{Brand: "Asics", Model: "Gel-Cumulus 26"},
		{Brand: "Saucony", Model: "Endorphin Speed 4"},
		{Brand: "Brooks", Model: "Glycerin 21"},
	}
}

func newTestMatcher() *MatchingService {
	return NewMatchingService(newTestNormalizer(), MatchConfig{})
}

func TestNewMatchingService(t *testing.T) {
	t.Run("creates service with provided boost", func(t *testing.T) {
		svc := NewMatchingService(newTestNormalizer(), MatchConfig{PrefixBoost: 0.85})
		if svc.prefixBoost != 0.85 {
			t.Errorf("prefixBoost = %v, want 0.85", svc.prefixBoost)
		}
	})

	t.Run("uses default boost when zero", func(t *testing.T) {
		svc := NewMatchingService(newTestNormalizer(), MatchConfig{})
		if svc.prefixBoost != defaultPrefixBoost {
			t.Errorf("prefixBoost = %v, want %v (default)", svc.prefixBoost, defaultPrefixBoost)
		}
	})
}

func TestIdentifyModel(t *testing.T) {
	svc := newTestMatcher()

	t.Run("exact match scores full confidence", func(t *testing.T) {
		result := svc.IdentifyModel("Pegasus 41", testShoes())
		if result.Model != "pegasus 41" {
			t.Errorf("Model = %q, want %q", result.Model, "pegasus 41")
		}
		if result.Confidence != 1.0 {
			t.Errorf("Confidence = %v, want 1.0", result.Confidence)
		}
	})

	t.Run("brand prefix does not affect the match", func(t *testing.T) {
		result := svc.IdentifyModel("Asics Novablast 4", testShoes())
		if result.Model != "novablast 4" {
			t.Errorf("Model = %q, want %q", result.Model, "novablast 4")
		}
		if result.Confidence != 1.0 {
			t.Errorf("Confidence = %v, want 1.0", result.Confidence)
		}
	})

	t.Run("bare stem is boosted to its numbered variant", func(t *testing.T) {
		result := svc.IdentifyModel("pegasus", testShoes())
		if result.Model != "pegasus 41" {
			t.Errorf("Model = %q, want %q", result.Model, "pegasus 41")
		}
		if result.Confidence < defaultPrefixBoost {
			t.Errorf("Confidence = %v, want >= %v (boosted)", result.Confidence, defaultPrefixBoost)
		}
	})

	t.Run("unrelated phrase scores low", func(t *testing.T) {
		result := svc.IdentifyModel("xblast", testShoes())
		if result.Confidence >= 0.8 {
			t.Errorf("Confidence = %v, want < 0.8 for unrelated phrase", result.Confidence)
		}
		if result.Model == "" {
			t.Error("expected best-effort model even at low confidence")
		}
	})

	t.Run("input that normalises to nothing", func(t *testing.T) {
		result := svc.IdentifyModel("the shoes", testShoes())
		if result.Model != "" {
			t.Errorf("Model = %q, want empty", result.Model)
		}
		if result.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", result.Confidence)
		}
		if result.Reason != "empty after normalisation" {
			t.Errorf("Reason = %q, want 'empty after normalisation'", result.Reason)
		}
	})

	t.Run("zero similarity yields no model", func(t *testing.T) {
		shoes := []domain.Shoe{{Brand: "Acme", Model: "Abc"}}
		result := svc.IdentifyModel("xyz", shoes)
		if result.Model != "" {
			t.Errorf("Model = %q, want empty for zero-signal candidate", result.Model)
		}
		if result.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", result.Confidence)
		}
		if result.Reason != "no match found" {
			t.Errorf("Reason = %q, want 'no match found'", result.Reason)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		result := svc.IdentifyModel("pegasus", nil)
		if result.Model != "" {
			t.Errorf("Model = %q, want empty", result.Model)
		}
		if result.Reason != "no models available" {
			t.Errorf("Reason = %q, want 'no models available'", result.Reason)
		}
	})

	t.Run("ties keep the first catalog entry", func(t *testing.T) {
		shoes := []domain.Shoe{
			{Brand: "Acme", Model: "Alpha 1"},
			{Brand: "Acme", Model: "Alpha 2"},
		}
		result := svc.IdentifyModel("alpha", shoes)
		if result.Model != "alpha 1" {
			t.Errorf("Model = %q, want %q (first entry on tie)", result.Model, "alpha 1")
		}
	})

	t.Run("repeated calls are consistent", func(t *testing.T) {
		first := svc.IdentifyModel("novablast", testShoes())
		second := svc.IdentifyModel("novablast", testShoes())
		if first.Model != second.Model || first.Confidence != second.Confidence {
			t.Errorf("results differ between calls: %+v vs %+v", first, second)
		}
	})
}
