package mwt

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Option configures an Explorer.
type Option func(*explorerOptions)

type explorerOptions struct {
	onRecordError func(*RecordError)
	metrics       *Metrics
}

// WithRecordErrorHandler sets the function that receives lost records.
// The default handler logs a warning. The handler runs on the caller's
// goroutine before ChooseAction returns.
func WithRecordErrorHandler(fn func(*RecordError)) Option {
	return func(o *explorerOptions) {
		if fn != nil {
			o.onRecordError = fn
		}
	}
}

// WithMetrics attaches counters to the Explorer.
func WithMetrics(m *Metrics) Option {
	return func(o *explorerOptions) {
		o.metrics = m
	}
}

func logRecordError(err *RecordError) {
	logrus.Warnf("mwt: decision not recorded: %v", err)
}

// Explorer chooses actions through an exploration policy and records the
// decisions that policy marks as informative.
//
// An Explorer holds only its application hash and a shared Recorder, so
// ChooseAction may be called from many goroutines at once.
type Explorer[C any] struct {
	appHash       uint64
	recorder      Recorder[C]
	onRecordError func(*RecordError)
	metrics       *Metrics
}

// NewExplorer creates an Explorer for the application named appID.
// appID is hashed once here; every seed this Explorer derives includes it.
func NewExplorer[C any](appID string, recorder Recorder[C], opts ...Option) (*Explorer[C], error) {
	if recorder == nil {
		return nil, ErrNilRecorder
	}
	appHash, err := HashID(appID)
	if err != nil {
		return nil, fmt.Errorf("new explorer: %w", err)
	}
	o := explorerOptions{onRecordError: logRecordError}
	for _, opt := range opts {
		opt(&o)
	}
	return &Explorer[C]{
		appHash:       appHash,
		recorder:      recorder,
		onRecordError: o.onRecordError,
		metrics:       o.metrics,
	}, nil
}

// AppHash returns the hash of the application id.
func (e *Explorer[C]) AppHash() uint64 {
	return e.appHash
}

// Seed returns the seed a decision for uniqueKey is made under.
func (e *Explorer[C]) Seed(uniqueKey string) (Seed, error) {
	unitHash, err := HashID(uniqueKey)
	if err != nil {
		return 0, err
	}
	return ComposeSeed(unitHash, e.appHash), nil
}

// ChooseAction picks an action for the experimental unit uniqueKey (a user
// id, a session id, ...) in context c and returns it.
//
// Hashing and policy failures are returned and nothing is recorded. A
// failing Recorder never fails the call: the lost record goes to the record
// error handler and the chosen action is still returned.
func (e *Explorer[C]) ChooseAction(policy Policy[C], uniqueKey string, c C) (int, error) {
	seed, err := e.Seed(uniqueKey)
	if err != nil {
		e.metrics.incEncodingErrors()
		return 0, fmt.Errorf("choose action: %w", err)
	}
	if policy == nil {
		e.metrics.incPolicyErrors()
		return 0, fmt.Errorf("choose action: nil policy: %w", ErrPolicyEvaluation)
	}

	decision, err := policy.ChooseAction(seed, c)
	if err != nil {
		e.metrics.incPolicyErrors()
		return 0, policyError(err)
	}
	if err := decision.Validate(); err != nil {
		e.metrics.incPolicyErrors()
		return 0, fmt.Errorf("choose action: %w: %v", ErrPolicyEvaluation, err)
	}

	if decision.ShouldRecord {
		e.record(c, decision, uniqueKey)
	}
	e.metrics.incDecisions()
	return decision.Action, nil
}

// record hands the decision to the Recorder, isolating the caller from
// both returned errors and panics.
func (e *Explorer[C]) record(c C, d Decision, uniqueKey string) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("recorder panic: %v", r)
			}
		}()
		return e.recorder.Record(c, d.Action, d.Probability, uniqueKey)
	}()
	if err == nil {
		e.metrics.incRecords()
		return
	}
	e.metrics.incRecordFailures()
	e.onRecordError(&RecordError{
		UniqueKey:   uniqueKey,
		Action:      d.Action,
		Probability: d.Probability,
		Err:         err,
	})
}

func policyError(err error) error {
	if errors.Is(err, ErrPolicyEvaluation) {
		return fmt.Errorf("choose action: %w", err)
	}
	return fmt.Errorf("choose action: %w: %w", ErrPolicyEvaluation, err)
}
