package mwt

import (
	"fmt"
	"math"
)

// Decision is the result of one policy invocation.
type Decision struct {
	Action int
	// Probability is the exact mass the policy assigned to Action; it is
	// recorded unchanged.
	Probability float64
	// ShouldRecord is false for decisions that carry no exploration
	// information, e.g. a deterministic override.
	ShouldRecord bool
}

// Validate checks that Probability lies in (0, 1].
func (d Decision) Validate() error {
	if math.IsNaN(d.Probability) || d.Probability <= 0 || d.Probability > 1 {
		return fmt.Errorf("action %d: probability %v outside (0, 1]", d.Action, d.Probability)
	}
	return nil
}
