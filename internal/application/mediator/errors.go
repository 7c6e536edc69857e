package mediator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Resolution failures. Every error returned by the mediator for a wiring
// problem wraps exactly one of these; match them with errors.Is.
var (
	ErrHandlerNotFound       = errors.New("handler not found")
	ErrAmbiguousHandler      = errors.New("ambiguous handler")
	ErrMissingDependency     = errors.New("missing dependency")
	ErrNoConstructor         = errors.New("no constructor")
	ErrDuplicateRegistration = errors.New("duplicate handler registration")
	ErrNilRequest            = errors.New("request cannot be nil")
	ErrHandlerTypeMismatch   = errors.New("handler type mismatch")
)

// ResolutionError describes why a request could not be routed to a handler
type ResolutionError struct {
	// Kind is one of the sentinel errors above
	Kind error

	Contract   Contract
	Handler    reflect.Type
	Candidates []reflect.Type
	Dependency reflect.Type

	// Reason adds detail for NoConstructor and MissingDependency
	Reason string
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	b.WriteString(": ")

	switch e.Kind {
	case ErrHandlerNotFound:
		fmt.Fprintf(&b, "no handler implements %s", e.Contract)
	case ErrAmbiguousHandler:
		names := make([]string, len(e.Candidates))
		for i, c := range e.Candidates {
			names[i] = typeName(c)
		}
		fmt.Fprintf(&b, "%d handlers implement %s (%s)", len(e.Candidates), e.Contract, strings.Join(names, ", "))
	case ErrMissingDependency:
		if e.Handler != nil {
			fmt.Fprintf(&b, "handler %s requires %s, which the service locator cannot resolve", e.Handler, typeName(e.Dependency))
		} else {
			fmt.Fprintf(&b, "service locator cannot resolve %s", typeName(e.Dependency))
		}
	case ErrNoConstructor:
		fmt.Fprintf(&b, "handler %s has no usable constructor", typeName(e.Handler))
	default:
		fmt.Fprintf(&b, "%s", e.Contract)
	}

	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}

	return b.String()
}

func (e *ResolutionError) Unwrap() error {
	return e.Kind
}

// ErrorKind maps a dispatch error to a short, stable label suitable for
// logs and metric labels. Errors returned by handlers map to "handler_error".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrHandlerNotFound):
		return "not_found"
	case errors.Is(err, ErrAmbiguousHandler):
		return "ambiguous"
	case errors.Is(err, ErrMissingDependency):
		return "missing_dependency"
	case errors.Is(err, ErrNoConstructor):
		return "no_constructor"
	case errors.Is(err, ErrNilRequest):
		return "nil_request"
	case errors.Is(err, ErrHandlerTypeMismatch):
		return "type_mismatch"
	default:
		return "handler_error"
	}
}
