package policy

import (
	"fmt"

	"github.com/inference-sim/mwt/mwt"
)

// Bootstrap holds an ensemble of default policies (bags). Each decision
// follows one bag picked by the seed; the probability of the chosen action
// is the fraction of bags that vote for it.
type Bootstrap[C any] struct {
	Bags       []DefaultPolicy[C]
	NumActions int
}

// NewBootstrap returns a Bootstrap policy over numActions actions.
func NewBootstrap[C any](numActions int, bags []DefaultPolicy[C]) (*Bootstrap[C], error) {
	if err := checkNumActions(numActions); err != nil {
		return nil, err
	}
	if len(bags) == 0 {
		return nil, fmt.Errorf("no bags: %w", mwt.ErrPolicyEvaluation)
	}
	return &Bootstrap[C]{Bags: bags, NumActions: numActions}, nil
}

func (p *Bootstrap[C]) ChooseAction(seed mwt.Seed, c C) (mwt.Decision, error) {
	if len(p.Bags) == 0 {
		return mwt.Decision{}, fmt.Errorf("no bags: %w", mwt.ErrPolicyEvaluation)
	}
	// Every bag is evaluated so the vote share is exact.
	actions := make([]int, len(p.Bags))
	for i, bag := range p.Bags {
		a, err := evalDefault(bag, c, p.NumActions)
		if err != nil {
			return mwt.Decision{}, fmt.Errorf("bag %d: %w", i, err)
		}
		actions[i] = a
	}

	chosen := actions[seed.Rand().IntN(len(actions))]
	votes := 0
	for _, a := range actions {
		if a == chosen {
			votes++
		}
	}
	return mwt.Decision{
		Action:       chosen,
		Probability:  float64(votes) / float64(len(actions)),
		ShouldRecord: true,
	}, nil
}
