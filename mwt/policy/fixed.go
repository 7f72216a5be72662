package policy

import (
	"fmt"

	"github.com/inference-sim/mwt/mwt"
)

// Fixed always returns Action with probability 1. It is used for
// deterministic overrides; set Record to log those decisions anyway.
// NumActions, when non-zero, bounds Action to [1, NumActions].
type Fixed[C any] struct {
	Action     int
	NumActions int
	Record     bool
}

// NewFixed validates action and returns a Fixed policy.
func NewFixed[C any](action, numActions int, record bool) (*Fixed[C], error) {
	p := &Fixed[C]{Action: action, NumActions: numActions, Record: record}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Fixed[C]) validate() error {
	if p.Action < 1 || (p.NumActions > 0 && p.Action > p.NumActions) {
		return fmt.Errorf("fixed action %d out of range (num actions %d): %w", p.Action, p.NumActions, mwt.ErrPolicyEvaluation)
	}
	return nil
}

func (p *Fixed[C]) ChooseAction(_ mwt.Seed, _ C) (mwt.Decision, error) {
	if err := p.validate(); err != nil {
		return mwt.Decision{}, err
	}
	return mwt.Decision{Action: p.Action, Probability: 1, ShouldRecord: p.Record}, nil
}
