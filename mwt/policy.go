package mwt

// Policy selects an action for a context under a seed.
// ChooseAction must be a pure function of the seed, the context and the
// policy's fixed configuration: no global randomness, no wall clock.
type Policy[C any] interface {
	ChooseAction(seed Seed, c C) (Decision, error)
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc[C any] func(seed Seed, c C) (Decision, error)

func (f PolicyFunc[C]) ChooseAction(seed Seed, c C) (Decision, error) {
	return f(seed, c)
}
