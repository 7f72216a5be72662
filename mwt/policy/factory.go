package policy

import (
	"fmt"

	"github.com/inference-sim/mwt/mwt"
)

// Policy names accepted by New.
const (
	NameFixed         = "fixed"
	NameUniform       = "uniform"
	NameEpsilonGreedy = "epsilon-greedy"
	NameSoftmax       = "softmax"
	NameBootstrap     = "bootstrap"
)

// Names lists the valid policy names.
var Names = []string{NameFixed, NameUniform, NameEpsilonGreedy, NameSoftmax, NameBootstrap}

// Config selects and configures a policy by name.
type Config struct {
	Name       string
	NumActions int
	Action     int     // fixed
	Record     bool    // fixed
	Epsilon    float64 // epsilon-greedy
	Lambda     float64 // softmax
}

// Callbacks supplies the caller's models to policies that need them.
type Callbacks[C any] struct {
	Default DefaultPolicy[C]   // epsilon-greedy
	Scorer  Scorer[C]          // softmax
	Bags    []DefaultPolicy[C] // bootstrap
}

// New creates a policy by name.
func New[C any](cfg Config, cb Callbacks[C]) (mwt.Policy[C], error) {
	switch cfg.Name {
	case NameFixed:
		p, err := NewFixed[C](cfg.Action, cfg.NumActions, cfg.Record)
		if err != nil {
			return nil, newError(cfg.Name, err)
		}
		return p, nil
	case NameUniform:
		p, err := NewUniform[C](cfg.NumActions)
		if err != nil {
			return nil, newError(cfg.Name, err)
		}
		return p, nil
	case NameEpsilonGreedy:
		p, err := NewEpsilonGreedy(cfg.Epsilon, cfg.NumActions, cb.Default)
		if err != nil {
			return nil, newError(cfg.Name, err)
		}
		return p, nil
	case NameSoftmax:
		p, err := NewSoftmax(cfg.Lambda, cb.Scorer)
		if err != nil {
			return nil, newError(cfg.Name, err)
		}
		return p, nil
	case NameBootstrap:
		p, err := NewBootstrap(cfg.NumActions, cb.Bags)
		if err != nil {
			return nil, newError(cfg.Name, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown policy %q; valid policies: %v", cfg.Name, Names)
	}
}

func newError(name string, err error) error {
	return fmt.Errorf("new %s policy: %w", name, err)
}
