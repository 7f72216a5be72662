package recorder

import (
	"errors"

	"github.com/inference-sim/mwt/mwt"
)

// Tee forwards each record to every recorder in order. All recorders see
// the record even if an earlier one fails; the failures are joined.
type Tee[C any] struct {
	recorders []mwt.Recorder[C]
}

// NewTee returns a Tee over recorders.
func NewTee[C any](recorders ...mwt.Recorder[C]) *Tee[C] {
	return &Tee[C]{recorders: recorders}
}

func (t *Tee[C]) Record(c C, action int, probability float64, uniqueKey string) error {
	var errs []error
	for _, r := range t.recorders {
		if err := r.Record(c, action, probability, uniqueKey); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
