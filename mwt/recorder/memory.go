package recorder

import "sync"

// Memory keeps records in a slice.
type Memory[C any] struct {
	mu      sync.Mutex
	records []Record[C]
}

// NewMemory creates an empty Memory recorder.
func NewMemory[C any]() *Memory[C] {
	return &Memory[C]{records: make([]Record[C], 0)}
}

// Record appends the decision.
func (m *Memory[C]) Record(c C, action int, probability float64, uniqueKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, Record[C]{
		Context:     c,
		Action:      action,
		Probability: probability,
		UniqueKey:   uniqueKey,
	})
	return nil
}

// Records returns a copy of the records in arrival order.
func (m *Memory[C]) Records() []Record[C] {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record[C], len(m.records))
	copy(out, m.records)
	return out
}

// Len returns the number of records.
func (m *Memory[C]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
