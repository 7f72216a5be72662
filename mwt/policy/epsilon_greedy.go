package policy

import (
	"fmt"

	"github.com/inference-sim/mwt/mwt"
)

// EpsilonGreedy follows Default with probability 1-Epsilon and otherwise
// picks uniformly among NumActions actions, the default included.
//
// Probability of the chosen action a:
//
//	Epsilon/NumActions + (1-Epsilon)·[a == default]
type EpsilonGreedy[C any] struct {
	Epsilon    float64
	NumActions int
	Default    DefaultPolicy[C]
}

// NewEpsilonGreedy validates the configuration and returns the policy.
func NewEpsilonGreedy[C any](epsilon float64, numActions int, def DefaultPolicy[C]) (*EpsilonGreedy[C], error) {
	p := &EpsilonGreedy[C]{Epsilon: epsilon, NumActions: numActions, Default: def}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *EpsilonGreedy[C]) validate() error {
	if p.Epsilon < 0 || p.Epsilon > 1 {
		return fmt.Errorf("epsilon %v outside [0, 1]: %w", p.Epsilon, mwt.ErrPolicyEvaluation)
	}
	if p.Default == nil {
		return fmt.Errorf("nil default policy: %w", mwt.ErrPolicyEvaluation)
	}
	return checkNumActions(p.NumActions)
}

func (p *EpsilonGreedy[C]) ChooseAction(seed mwt.Seed, c C) (mwt.Decision, error) {
	if err := p.validate(); err != nil {
		return mwt.Decision{}, err
	}
	def, err := evalDefault(p.Default, c, p.NumActions)
	if err != nil {
		return mwt.Decision{}, err
	}

	r := seed.Rand()
	action := def
	if r.Float64() < p.Epsilon {
		action = r.IntN(p.NumActions) + 1
	}

	prob := p.Epsilon / float64(p.NumActions)
	if action == def {
		prob += 1 - p.Epsilon
	}
	return mwt.Decision{Action: action, Probability: prob, ShouldRecord: true}, nil
}
