// Package recorder provides mwt.Recorder implementations: in memory, JSON
// lines and SQLite, plus Async for slow sinks and Tee for fan-out.
//
// All recorders here are safe for concurrent use.
package recorder

// Record is one logged decision.
type Record[C any] struct {
	Context     C       `json:"context"`
	Action      int     `json:"action"`
	Probability float64 `json:"probability"`
	UniqueKey   string  `json:"unique_key"`
}
