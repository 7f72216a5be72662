package mwt

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplorer_EndToEnd_FixedPolicy(t *testing.T) {
	// GIVEN an explorer for "expt-1" and a policy that always picks 3 with p=1
	rec := &captureRecorder{}
	e, err := NewExplorer[string]("expt-1", rec)
	require.NoError(t, err)

	// WHEN a decision is made for user-42
	action, err := e.ChooseAction(fixedPolicy(3, 1.0, true), "user-42", "ctx")

	// THEN action 3 is returned and exactly one record is emitted
	require.NoError(t, err)
	assert.Equal(t, 3, action)
	assert.Equal(t, []capturedRecord{{"ctx", 3, 1.0, "user-42"}}, rec.all())
}

func TestExplorer_SeedIsUnitHashPlusAppHash(t *testing.T) {
	// GIVEN the hashes of "expt-1" and "user-42"
	e, err := NewExplorer[string]("expt-1", &captureRecorder{})
	require.NoError(t, err)
	assert.Equal(t, uint64(0xb0de2b13), e.AppHash())

	// WHEN a decision is made
	p := &seedCapture{}
	_, err = e.ChooseAction(p, "user-42", "")
	require.NoError(t, err)

	// THEN the policy saw 0xb972dad0 + 0xb0de2b13
	require.Len(t, p.seeds, 1)
	assert.Equal(t, Seed(6078662115), p.seeds[0])

	seed, err := e.Seed("user-42")
	require.NoError(t, err)
	assert.Equal(t, p.seeds[0], seed)
}

func TestExplorer_Deterministic_AcrossInstances(t *testing.T) {
	// GIVEN two independently constructed explorers for the same application
	recA, recB := &captureRecorder{}, &captureRecorder{}
	a, err := NewExplorer[string]("expt-1", recA)
	require.NoError(t, err)
	b, err := NewExplorer[string]("expt-1", recB)
	require.NoError(t, err)

	// WHEN each decides for the same units, twice
	for round := 0; round < 2; round++ {
		for i := 0; i < 50; i++ {
			key := fmt.Sprintf("user-%d", i)
			actA, err := a.ChooseAction(seedPolicy(10), key, "c")
			require.NoError(t, err)
			actB, err := b.ChooseAction(seedPolicy(10), key, "c")
			require.NoError(t, err)
			// THEN the actions agree
			assert.Equal(t, actA, actB, "unit %s", key)
		}
	}

	// THEN the recorded tuples agree too
	assert.Equal(t, recA.all(), recB.all())
	assert.Equal(t, recA.all()[:50], recA.all()[50:])
}

func TestExplorer_CrossApplicationIsolation(t *testing.T) {
	// GIVEN explorers for two different applications
	a, err := NewExplorer[string]("expt-1", &captureRecorder{})
	require.NoError(t, err)
	b, err := NewExplorer[string]("expt-2", &captureRecorder{})
	require.NoError(t, err)

	// THEN the same unit gets different seeds
	seedA, err := a.Seed("user-42")
	require.NoError(t, err)
	seedB, err := b.Seed("user-42")
	require.NoError(t, err)
	assert.NotEqual(t, seedA, seedB)
	assert.Equal(t, Seed(4050893916), seedB)

	// THEN across many units the actions are not identical
	differ := 0
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("user-%d", i)
		actA, err := a.ChooseAction(seedPolicy(10), key, "")
		require.NoError(t, err)
		actB, err := b.ChooseAction(seedPolicy(10), key, "")
		require.NoError(t, err)
		if actA != actB {
			differ++
		}
	}
	assert.Greater(t, differ, 0)
}

func TestExplorer_ShouldRecordFalse_NeverRecords(t *testing.T) {
	rec := &captureRecorder{}
	e, err := NewExplorer[string]("expt-1", rec)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		action, err := e.ChooseAction(fixedPolicy(2, 1.0, false), fmt.Sprintf("u%d", i), "")
		require.NoError(t, err)
		assert.Equal(t, 2, action)
	}
	assert.Empty(t, rec.all())
}

func TestExplorer_RecordsExactProbability(t *testing.T) {
	// GIVEN a probability that does not round-trip through float32
	p := 1.0 / 3.0
	rec := &captureRecorder{}
	e, err := NewExplorer[string]("expt-1", rec)
	require.NoError(t, err)

	_, err = e.ChooseAction(fixedPolicy(1, p, true), "user-1", "")
	require.NoError(t, err)

	records := rec.all()
	require.Len(t, records, 1)
	if records[0].Probability != p {
		t.Errorf("recorded probability = %v, want exactly %v", records[0].Probability, p)
	}
}

func TestExplorer_FailingRecorder_StillReturnsAction(t *testing.T) {
	// GIVEN a recorder that always fails
	var lost []*RecordError
	e, err := NewExplorer[string]("expt-1", failingRecorder{},
		WithRecordErrorHandler(func(err *RecordError) { lost = append(lost, err) }))
	require.NoError(t, err)

	// WHEN decisions are made
	for i := 0; i < 5; i++ {
		action, err := e.ChooseAction(fixedPolicy(4, 0.5, true), "user-42", "")

		// THEN every call still succeeds with the policy's action
		require.NoError(t, err)
		assert.Equal(t, 4, action)
	}

	// THEN every lost record was reported
	require.Len(t, lost, 5)
	assert.True(t, errors.Is(lost[0], ErrRecordFailed))
	assert.True(t, errors.Is(lost[0], errSinkDown))
	assert.Equal(t, "user-42", lost[0].UniqueKey)
	assert.Equal(t, 4, lost[0].Action)
	assert.Equal(t, 0.5, lost[0].Probability)
}

func TestExplorer_PanickingRecorder_StillReturnsAction(t *testing.T) {
	var lost []*RecordError
	panicky := RecorderFunc[string](func(string, int, float64, string) error {
		panic("disk on fire")
	})
	e, err := NewExplorer[string]("expt-1", panicky,
		WithRecordErrorHandler(func(err *RecordError) { lost = append(lost, err) }))
	require.NoError(t, err)

	action, err := e.ChooseAction(fixedPolicy(2, 1, true), "user-42", "")
	require.NoError(t, err)
	assert.Equal(t, 2, action)
	require.Len(t, lost, 1)
	assert.Contains(t, lost[0].Error(), "disk on fire")
}

func TestExplorer_DefaultRecordErrorHandler_DoesNotFail(t *testing.T) {
	e, err := NewExplorer[string]("expt-1", failingRecorder{})
	require.NoError(t, err)

	action, err := e.ChooseAction(fixedPolicy(1, 1, true), "user-42", "")
	require.NoError(t, err)
	assert.Equal(t, 1, action)
}

func TestExplorer_PolicyError_Propagates(t *testing.T) {
	// GIVEN a policy with nothing to choose from
	errEmpty := errors.New("empty action set")
	p := PolicyFunc[string](func(Seed, string) (Decision, error) {
		return Decision{}, errEmpty
	})
	rec := &captureRecorder{}
	e, err := NewExplorer[string]("expt-1", rec)
	require.NoError(t, err)

	// WHEN a decision is requested
	_, err = e.ChooseAction(p, "user-42", "")

	// THEN the failure is a policy evaluation error wrapping the cause, and nothing is recorded
	assert.ErrorIs(t, err, ErrPolicyEvaluation)
	assert.ErrorIs(t, err, errEmpty)
	assert.Empty(t, rec.all())
}

func TestExplorer_InvalidProbability_IsPolicyError(t *testing.T) {
	rec := &captureRecorder{}
	e, err := NewExplorer[string]("expt-1", rec)
	require.NoError(t, err)

	for _, p := range []float64{0, -1, 1.5, math.NaN()} {
		_, err := e.ChooseAction(fixedPolicy(1, p, true), "user-42", "")
		assert.ErrorIs(t, err, ErrPolicyEvaluation, "p=%v", p)
	}
	assert.Empty(t, rec.all())
}

func TestExplorer_NilPolicy(t *testing.T) {
	e, err := NewExplorer[string]("expt-1", &captureRecorder{})
	require.NoError(t, err)

	_, err = e.ChooseAction(nil, "user-42", "")
	assert.ErrorIs(t, err, ErrPolicyEvaluation)
}

func TestExplorer_InvalidUnitKey_PolicyNotCalled(t *testing.T) {
	p := &seedCapture{}
	e, err := NewExplorer[string]("expt-1", &captureRecorder{})
	require.NoError(t, err)

	_, err = e.ChooseAction(p, "user-\xff", "")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Empty(t, p.seeds)
}

func TestNewExplorer_InvalidAppID(t *testing.T) {
	_, err := NewExplorer[string]("expt-\xfe", &captureRecorder{})
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestNewExplorer_NilRecorder(t *testing.T) {
	_, err := NewExplorer[string]("expt-1", nil)
	assert.ErrorIs(t, err, ErrNilRecorder)
}

func TestExplorer_ConcurrentCalls(t *testing.T) {
	// GIVEN one explorer shared by many goroutines
	rec := &captureRecorder{}
	e, err := NewExplorer[string]("expt-1", rec)
	require.NoError(t, err)

	const workers, perWorker = 8, 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := e.ChooseAction(seedPolicy(5), fmt.Sprintf("w%d-u%d", w, i), "")
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	// THEN every decision was recorded once
	assert.Len(t, rec.all(), workers*perWorker)
}
