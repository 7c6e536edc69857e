package mediator

import (
	"reflect"
	"time"
)

// DispatchRecord describes the outcome of one Send or Ask call
type DispatchRecord struct {
	Contract Contract
	// Handler is nil when no handler type could be resolved
	Handler  reflect.Type
	Duration time.Duration
	Err      error
}

// Status returns "success" or the ErrorKind label of the failure
func (r DispatchRecord) Status() string {
	return ErrorKind(r.Err)
}

// Observer is notified after every dispatch, successful or not.
// Observers run on the caller's goroutine and must not block.
type Observer interface {
	ObserveDispatch(record DispatchRecord)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(record DispatchRecord)

// ObserveDispatch calls f(record)
func (f ObserverFunc) ObserveDispatch(record DispatchRecord) {
	f(record)
}
