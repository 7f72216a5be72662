package recorder

import "math"

// Summary aggregates statistics over logged records.
type Summary struct {
	Total              int
	UniqueKeys         int
	ActionCounts       map[int]int // action → number of records
	MeanProbability    float64
	MinProbability     float64
	MeanInverseWeights float64 // mean of 1/probability; large values mean high-variance importance weights
}

// Summarize computes aggregate statistics. Safe for nil or empty input
// (returns zero-value fields).
func Summarize[C any](records []Record[C]) *Summary {
	s := &Summary{ActionCounts: make(map[int]int)}
	if len(records) == 0 {
		return s
	}

	keys := make(map[string]struct{})
	s.MinProbability = math.Inf(1)
	totalP, totalInv := 0.0, 0.0
	for _, r := range records {
		s.ActionCounts[r.Action]++
		keys[r.UniqueKey] = struct{}{}
		totalP += r.Probability
		if r.Probability > 0 {
			totalInv += 1 / r.Probability
		}
		s.MinProbability = math.Min(s.MinProbability, r.Probability)
	}
	s.Total = len(records)
	s.UniqueKeys = len(keys)
	s.MeanProbability = totalP / float64(s.Total)
	s.MeanInverseWeights = totalInv / float64(s.Total)
	return s
}
