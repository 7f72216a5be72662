package mwt

// Recorder accepts logged decisions for later offline use.
// Implementations must be safe for concurrent use; Explorer does not
// serialize calls.
type Recorder[C any] interface {
	Record(c C, action int, probability float64, uniqueKey string) error
}

// RecorderFunc adapts a plain function to the Recorder interface.
type RecorderFunc[C any] func(c C, action int, probability float64, uniqueKey string) error

func (f RecorderFunc[C]) Record(c C, action int, probability float64, uniqueKey string) error {
	return f(c, action, probability, uniqueKey)
}
