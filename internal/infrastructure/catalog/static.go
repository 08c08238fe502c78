// Package catalog provides the static shoe catalog. The catalog is
// read-only reference data; entries keep their file order so matching
// stays deterministic.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cinda/backend/internal/domain"
)

//go:embed shoes.json
var shoesJSON []byte

// Static is an in-memory catalog backed by the embedded shoe data
type Static struct {
	shoes []domain.Shoe
}

// NewStatic loads the embedded catalog
func NewStatic() (*Static, error) {
	var shoes []domain.Shoe
	if err := json.Unmarshal(shoesJSON, &shoes); err != nil {
		return nil, fmt.Errorf("failed to parse embedded shoe catalog: %w", err)
	}
	if len(shoes) == 0 {
		return nil, fmt.Errorf("embedded shoe catalog is empty")
	}
	return &Static{shoes: shoes}, nil
}

// All returns every catalog entry in stable order
func (s *Static) All() []domain.Shoe {
	return s.shoes
}
