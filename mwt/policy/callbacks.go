package policy

import (
	"fmt"

	"github.com/inference-sim/mwt/mwt"
)

// DefaultPolicy is the caller's existing deterministic policy: it maps a
// context to an action in [1, numActions].
type DefaultPolicy[C any] func(c C) (int, error)

// Scorer maps a context to one score per action; element i scores action i+1.
type Scorer[C any] func(c C) ([]float64, error)

// evalDefault runs def and checks its action is in range.
func evalDefault[C any](def DefaultPolicy[C], c C, numActions int) (int, error) {
	if def == nil {
		return 0, fmt.Errorf("nil default policy: %w", mwt.ErrPolicyEvaluation)
	}
	action, err := def(c)
	if err != nil {
		return 0, fmt.Errorf("default policy: %w: %w", mwt.ErrPolicyEvaluation, err)
	}
	if action < 1 || action > numActions {
		return 0, fmt.Errorf("default policy returned action %d, want [1, %d]: %w", action, numActions, mwt.ErrPolicyEvaluation)
	}
	return action, nil
}

func checkNumActions(numActions int) error {
	if numActions < 1 {
		return fmt.Errorf("num actions %d: empty action set: %w", numActions, mwt.ErrPolicyEvaluation)
	}
	return nil
}
