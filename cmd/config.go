package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/mwt/mwt/policy"
)

// Config is the YAML file read by `mwt choose`.
// All fields must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	AppID    string         `yaml:"app_id" validate:"required"`
	Policy   PolicyConfig   `yaml:"policy"`
	Recorder RecorderConfig `yaml:"recorder"`
}

// PolicyConfig selects the exploration policy.
type PolicyConfig struct {
	Name          string    `yaml:"name" validate:"required,oneof=fixed uniform epsilon-greedy softmax bootstrap"`
	NumActions    int       `yaml:"num_actions" validate:"gte=0"`
	Epsilon       float64   `yaml:"epsilon" validate:"gte=0,lte=1"`
	Lambda        float64   `yaml:"lambda"`
	Action        int       `yaml:"action"`         // fixed
	Record        bool      `yaml:"record"`         // fixed
	DefaultAction int       `yaml:"default_action"` // epsilon-greedy
	Scores        []float64 `yaml:"scores"`         // softmax
	BagActions    []int     `yaml:"bag_actions"`    // bootstrap, one default action per bag
}

// RecorderConfig selects where recorded decisions go.
type RecorderConfig struct {
	Kind        string `yaml:"kind" validate:"required,oneof=none memory jsonl sqlite"`
	Path        string `yaml:"path" validate:"required_if=Kind jsonl,required_if=Kind sqlite"`
	AsyncBuffer int    `yaml:"async_buffer" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig reads and validates a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML with strict field checking and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// policyConfig maps the YAML policy section onto policy.Config.
func (p PolicyConfig) policyConfig() policy.Config {
	return policy.Config{
		Name:       p.Name,
		NumActions: p.NumActions,
		Action:     p.Action,
		Record:     p.Record,
		Epsilon:    p.Epsilon,
		Lambda:     p.Lambda,
	}
}

// callbacks builds constant models from the config. The CLI has no model
// of its own, so the default policy, scores and bags are configured values.
func (p PolicyConfig) callbacks() policy.Callbacks[unitContext] {
	cb := policy.Callbacks[unitContext]{
		Default: constAction(p.DefaultAction),
		Scorer: func(unitContext) ([]float64, error) {
			return p.Scores, nil
		},
	}
	for _, a := range p.BagActions {
		cb.Bags = append(cb.Bags, constAction(a))
	}
	return cb
}

func constAction(a int) policy.DefaultPolicy[unitContext] {
	return func(unitContext) (int, error) { return a, nil }
}
