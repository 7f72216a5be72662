package mwt

import (
	"errors"
	"sync"
)

// capturedRecord is one call to captureRecorder.Record.
type capturedRecord struct {
	Context     string
	Action      int
	Probability float64
	UniqueKey   string
}

// captureRecorder stores every record it receives.
type captureRecorder struct {
	mu      sync.Mutex
	records []capturedRecord
}

func (r *captureRecorder) Record(c string, action int, probability float64, uniqueKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, capturedRecord{c, action, probability, uniqueKey})
	return nil
}

func (r *captureRecorder) all() []capturedRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRecord(nil), r.records...)
}

var errSinkDown = errors.New("sink down")

// failingRecorder rejects every record.
type failingRecorder struct{}

func (failingRecorder) Record(string, int, float64, string) error {
	return errSinkDown
}

// fixedPolicy returns the same decision for every seed.
func fixedPolicy(action int, p float64, record bool) Policy[string] {
	return PolicyFunc[string](func(Seed, string) (Decision, error) {
		return Decision{Action: action, Probability: p, ShouldRecord: record}, nil
	})
}

// seedPolicy derives the action from the seed so seed changes are visible.
func seedPolicy(numActions int) Policy[string] {
	return PolicyFunc[string](func(seed Seed, _ string) (Decision, error) {
		return Decision{
			Action:       seed.Rand().IntN(numActions) + 1,
			Probability:  1 / float64(numActions),
			ShouldRecord: true,
		}, nil
	})
}

// seedCapture records the seed each call was made under.
type seedCapture struct {
	seeds []Seed
}

func (s *seedCapture) ChooseAction(seed Seed, _ string) (Decision, error) {
	s.seeds = append(s.seeds, seed)
	return Decision{Action: 1, Probability: 1, ShouldRecord: false}, nil
}
