package recorder

import (
	"errors"
	"fmt"
	"sync"

	"github.com/inference-sim/mwt/mwt"
)

var (
	// ErrBufferFull is returned by Async.Record when the buffer is full and
	// the record was dropped.
	ErrBufferFull = errors.New("async recorder buffer full")

	// ErrClosed is returned by Async.Record after Close.
	ErrClosed = errors.New("async recorder closed")
)

// Async hands records to a wrapped recorder on a background goroutine so
// that a slow sink never delays the decision path. Records are dropped,
// never blocked on, when the buffer is full; failures of the wrapped
// recorder are reported to the error callback and not retried.
type Async[C any] struct {
	next    mwt.Recorder[C]
	onError func(Record[C], error)
	queue   chan Record[C]

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsync starts a worker that forwards to next through a buffer of
// bufferSize records. onError may be nil.
func NewAsync[C any](next mwt.Recorder[C], bufferSize int, onError func(Record[C], error)) *Async[C] {
	if bufferSize < 1 {
		bufferSize = 1
	}
	if onError == nil {
		onError = func(Record[C], error) {}
	}
	a := &Async[C]{
		next:    next,
		onError: onError,
		queue:   make(chan Record[C], bufferSize),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async[C]) run() {
	defer close(a.done)
	for rec := range a.queue {
		if err := a.forward(rec); err != nil {
			a.onError(rec, err)
		}
	}
}

// forward hands one record to the wrapped recorder; a panic there becomes
// an error so the worker keeps draining.
func (a *Async[C]) forward(rec Record[C]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recorder panic: %v", r)
		}
	}()
	return a.next.Record(rec.Context, rec.Action, rec.Probability, rec.UniqueKey)
}

// Record enqueues the decision without blocking.
func (a *Async[C]) Record(c C, action int, probability float64, uniqueKey string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- Record[C]{Context: c, Action: action, Probability: probability, UniqueKey: uniqueKey}:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops accepting records and waits until the buffered ones have
// been forwarded.
func (a *Async[C]) Close() error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.done
	return nil
}
