// Package classifier is the boundary to the inference service. Everything
// above it deals in a fixed two-field prediction; transport details and
// payload validation stop here.
package classifier

import (
	"context"
	"fmt"
	"math"
)

// Prediction is the only shape a classify call may produce: the raw model
// label and its confidence score. The label is not interpreted here; the
// sentiment package owns normalization.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Validate enforces the boundary contract: the score must be a finite
// number in [0, 1]. An odd label is allowed through (normalization decides
// what it means); an odd score is an inference failure.
func (p Prediction) Validate() error {
	if math.IsNaN(p.Score) || math.IsInf(p.Score, 0) {
		return fmt.Errorf("score %v is not a finite number", p.Score)
	}
	if p.Score < 0 || p.Score > 1 {
		return fmt.Errorf("score %v outside [0, 1]", p.Score)
	}
	return nil
}

// Classifier classifies one text with a fixed model.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}
