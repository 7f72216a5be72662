package recorder

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONL writes each record as one JSON object per line.
// Context must be JSON-encodable.
type JSONL[C any] struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONL writes records to w. The caller owns w.
func NewJSONL[C any](w io.Writer) *JSONL[C] {
	return &JSONL[C]{enc: json.NewEncoder(w)}
}

// Record encodes and writes the decision.
func (j *JSONL[C]) Record(c C, action int, probability float64, uniqueKey string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	rec := Record[C]{Context: c, Action: action, Probability: probability, UniqueKey: uniqueKey}
	if err := j.enc.Encode(rec); err != nil {
		return fmt.Errorf("jsonl record: %w", err)
	}
	return nil
}
