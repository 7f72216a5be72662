package policy

import "github.com/inference-sim/mwt/mwt"

// Uniform picks one of NumActions actions with equal probability.
type Uniform[C any] struct {
	NumActions int
}

// NewUniform creates a Uniform policy over numActions actions.
func NewUniform[C any](numActions int) (*Uniform[C], error) {
	if err := checkNumActions(numActions); err != nil {
		return nil, err
	}
	return &Uniform[C]{NumActions: numActions}, nil
}

func (p *Uniform[C]) ChooseAction(seed mwt.Seed, _ C) (mwt.Decision, error) {
	if err := checkNumActions(p.NumActions); err != nil {
		return mwt.Decision{}, err
	}
	return mwt.Decision{
		Action:       seed.Rand().IntN(p.NumActions) + 1,
		Probability:  1 / float64(p.NumActions),
		ShouldRecord: true,
	}, nil
}
