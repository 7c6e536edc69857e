package mediator

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer interface{ String() string }

type name string

func (n name) String() string { return string(n) }

type page[T any] struct {
	BaseQuery[[]T]
	Items []T
}

type ptrName struct{ v string }

func (p *ptrName) String() string { return p.v }

func TestServiceLocator_Resolve(t *testing.T) {
	target := typeOf[stringer]()

	tests := []struct {
		name   string
		get    func(reflect.Type) any
		wantOK bool
	}{
		{name: "nil function", get: nil, wantOK: false},
		{name: "absent", get: func(reflect.Type) any { return nil }, wantOK: false},
		{name: "typed nil", get: func(reflect.Type) any { return (*ptrName)(nil) }, wantOK: false},
		{name: "present", get: func(reflect.Type) any { return name("x") }, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewServiceLocator(tt.get)

			v, ok := l.Resolve(target)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, v)
			}
		})
	}
}

func TestServiceLocator_NilReceiver(t *testing.T) {
	var l *ServiceLocator

	v, ok := l.Resolve(typeOf[stringer]())

	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestResolve(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		l := NewServiceLocator(func(reflect.Type) any { return name("ada") })

		s, err := Resolve[stringer](l)

		require.NoError(t, err)
		assert.Equal(t, "ada", s.String())
	})

	t.Run("absent", func(t *testing.T) {
		_, err := Resolve[stringer](NewServiceLocator(nil))

		var re *ResolutionError
		require.True(t, errors.As(err, &re))
		assert.ErrorIs(t, err, ErrMissingDependency)
		assert.Equal(t, typeOf[stringer](), re.Dependency)
		assert.Nil(t, re.Handler)
		assert.Equal(t, "missing dependency: service locator cannot resolve mediator.stringer", err.Error())
	})

	t.Run("nil locator", func(t *testing.T) {
		_, err := Resolve[stringer](nil)

		assert.ErrorIs(t, err, ErrMissingDependency)
	})

	t.Run("wrong type", func(t *testing.T) {
		l := NewServiceLocator(func(reflect.Type) any { return 42 })

		_, err := Resolve[stringer](l)

		assert.ErrorIs(t, err, ErrMissingDependency)
		assert.Contains(t, err.Error(), "service locator returned int")
	})
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: "success"},
		{err: &ResolutionError{Kind: ErrHandlerNotFound}, want: "not_found"},
		{err: &ResolutionError{Kind: ErrAmbiguousHandler}, want: "ambiguous"},
		{err: &ResolutionError{Kind: ErrMissingDependency}, want: "missing_dependency"},
		{err: &ResolutionError{Kind: ErrNoConstructor}, want: "no_constructor"},
		{err: ErrNilRequest, want: "nil_request"},
		{err: fmt.Errorf("ask: %w", ErrHandlerTypeMismatch), want: "type_mismatch"},
		{err: errors.New("boom"), want: "handler_error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestResolutionError_Messages(t *testing.T) {
	type ping struct{ BaseQuery[string] }
	type pingHandler struct{}
	contract := QueryContract(typeOf[ping](), typeOf[string]())

	notFound := &ResolutionError{Kind: ErrHandlerNotFound, Contract: contract}
	assert.Equal(t, "handler not found: no handler implements QueryHandler[mediator.ping,string]", notFound.Error())

	ambiguous := &ResolutionError{
		Kind:       ErrAmbiguousHandler,
		Contract:   contract,
		Candidates: []reflect.Type{typeOf[*pingHandler](), typeOf[pingHandler]()},
	}
	assert.Equal(t,
		"ambiguous handler: 2 handlers implement QueryHandler[mediator.ping,string] (*mediator.pingHandler, mediator.pingHandler)",
		ambiguous.Error())

	missing := &ResolutionError{
		Kind:       ErrMissingDependency,
		Contract:   contract,
		Handler:    typeOf[*pingHandler](),
		Dependency: typeOf[stringer](),
	}
	assert.Equal(t,
		"missing dependency: handler *mediator.pingHandler requires mediator.stringer, which the service locator cannot resolve",
		missing.Error())

	noCtor := &ResolutionError{Kind: ErrNoConstructor, Handler: typeOf[*pingHandler](), Reason: "constructor is int, not a function"}
	assert.Equal(t,
		"no constructor: handler *mediator.pingHandler has no usable constructor: constructor is int, not a function",
		noCtor.Error())
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "UnknownRequest", RequestName(nil))
	assert.Equal(t, "BaseCommand", RequestName(typeOf[BaseCommand]()))
	assert.Equal(t, "BaseCommand", RequestName(typeOf[*BaseCommand]()))
	assert.Equal(t, "page", RequestName(typeOf[page[BaseCommand]]()))
	assert.Equal(t, "page", RequestName(typeOf[*page[*BaseCommand]]()))
}

func TestPackageOf(t *testing.T) {
	assert.Equal(t, "github.com/hubertnosek100/hmediator/internal/application/mediator", packageOf(typeOf[**BaseCommand]()))
	assert.Equal(t, "", packageOf(typeOf[[]string]()))
	assert.Equal(t, "", packageOf(nil))
}

func TestContract_String(t *testing.T) {
	assert.Equal(t, "CommandHandler[mediator.BaseCommand]", CommandContract(typeOf[BaseCommand]()).String())
	assert.Equal(t, "QueryHandler[<nil>,<nil>]", QueryContract(nil, nil).String())
	assert.Equal(t, "command", KindCommand.String())
	assert.Equal(t, "query", KindQuery.String())
}
