package mediator

import (
	"fmt"
	"reflect"
)

// Locator supplies handler dependencies by type. A false second result means
// the type is absent; Locator implementations never fail otherwise.
// Implementations must be safe for concurrent readers.
type Locator interface {
	Resolve(t reflect.Type) (any, bool)
}

// ServiceLocator adapts a plain lookup function to Locator. A nil return from
// the function, including a typed nil, is reported as absent.
type ServiceLocator struct {
	get func(t reflect.Type) any
}

// NewServiceLocator wraps get. A nil get yields a locator that resolves nothing.
func NewServiceLocator(get func(t reflect.Type) any) *ServiceLocator {
	return &ServiceLocator{get: get}
}

// Resolve delegates to the wrapped function
func (l *ServiceLocator) Resolve(t reflect.Type) (any, bool) {
	if l == nil || l.get == nil {
		return nil, false
	}

	v := l.get(t)
	if isNil(v) {
		return nil, false
	}

	return v, true
}

// Resolve fetches a T from l. It is meant for handler factories; an absent
// or mistyped instance yields a MissingDependency error naming T.
func Resolve[T any](l Locator) (T, error) {
	var zero T
	t := typeOf[T]()

	if l == nil {
		return zero, &ResolutionError{Kind: ErrMissingDependency, Dependency: t}
	}

	v, ok := l.Resolve(t)
	if !ok {
		return zero, &ResolutionError{Kind: ErrMissingDependency, Dependency: t}
	}

	typed, ok := v.(T)
	if !ok {
		return zero, &ResolutionError{
			Kind:       ErrMissingDependency,
			Dependency: t,
			Reason:     fmt.Sprintf("service locator returned %T", v),
		}
	}

	return typed, nil
}
