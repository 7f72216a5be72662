package policy

import (
	"fmt"
	"math"

	"github.com/inference-sim/mwt/mwt"
)

// Softmax samples action i+1 with probability proportional to
// exp(Lambda·score_i). Lambda 0 is uniform; large Lambda approaches argmax.
type Softmax[C any] struct {
	Lambda float64
	Scorer Scorer[C]
}

// NewSoftmax returns a Softmax policy.
func NewSoftmax[C any](lambda float64, scorer Scorer[C]) (*Softmax[C], error) {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return nil, fmt.Errorf("lambda %v: %w", lambda, mwt.ErrPolicyEvaluation)
	}
	if scorer == nil {
		return nil, fmt.Errorf("nil scorer: %w", mwt.ErrPolicyEvaluation)
	}
	return &Softmax[C]{Lambda: lambda, Scorer: scorer}, nil
}

func (p *Softmax[C]) ChooseAction(seed mwt.Seed, c C) (mwt.Decision, error) {
	if p.Scorer == nil {
		return mwt.Decision{}, fmt.Errorf("nil scorer: %w", mwt.ErrPolicyEvaluation)
	}
	scores, err := p.Scorer(c)
	if err != nil {
		return mwt.Decision{}, fmt.Errorf("scorer: %w: %w", mwt.ErrPolicyEvaluation, err)
	}
	weights, total, err := softmaxWeights(p.Lambda, scores)
	if err != nil {
		return mwt.Decision{}, err
	}

	u := seed.Rand().Float64() * total
	chosen := -1
	cum := 0.0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		chosen = i
		cum += w
		if u < cum {
			break
		}
	}
	return mwt.Decision{
		Action:       chosen + 1,
		Probability:  weights[chosen] / total,
		ShouldRecord: true,
	}, nil
}

// softmaxWeights returns unnormalised weights shifted by the max score so
// the largest weight is exactly 1.
func softmaxWeights(lambda float64, scores []float64) ([]float64, float64, error) {
	if len(scores) == 0 {
		return nil, 0, fmt.Errorf("no scores: empty action set: %w", mwt.ErrPolicyEvaluation)
	}
	maxScaled := math.Inf(-1)
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, 0, fmt.Errorf("score %d is %v: %w", i, s, mwt.ErrPolicyEvaluation)
		}
		maxScaled = math.Max(maxScaled, lambda*s)
	}
	weights := make([]float64, len(scores))
	total := 0.0
	for i, s := range scores {
		weights[i] = math.Exp(lambda*s - maxScaled)
		total += weights[i]
	}
	return weights, total, nil
}
