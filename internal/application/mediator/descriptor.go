package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var errorType = typeOf[error]()

type invokeFunc func(ctx context.Context, handler, request any) (any, error)

// HandlerDescriptor describes one registered handler type: the contract it
// implements, how to construct it and how to call its Handle method.
type HandlerDescriptor struct {
	contract    Contract
	handlerType reflect.Type

	// constructor path: ordered dependency types and a reflective call
	dependencies []reflect.Type
	ctor         reflect.Value
	ctorErr      string

	// factory path: the factory resolves its own dependencies
	factory func(l Locator) (any, error)

	invoke invokeFunc
}

// Contract returns the contract instantiation the handler implements
func (d *HandlerDescriptor) Contract() Contract {
	return d.contract
}

// HandlerType returns the concrete handler type
func (d *HandlerDescriptor) HandlerType() reflect.Type {
	return d.handlerType
}

// Dependencies returns the constructor parameter types in declared order.
// Factory-registered handlers report none.
func (d *HandlerDescriptor) Dependencies() []reflect.Type {
	return append([]reflect.Type(nil), d.dependencies...)
}

// HasConstructor reports whether the handler can be built
func (d *HandlerDescriptor) HasConstructor() bool {
	return d.factory != nil || d.ctorErr == ""
}

func newConstructorDescriptor(contract Contract, handlerType reflect.Type, ctor any, invoke invokeFunc) *HandlerDescriptor {
	d := &HandlerDescriptor{
		contract:    contract,
		handlerType: handlerType,
		invoke:      invoke,
	}

	if ctor == nil {
		d.ctorErr = "no constructor registered"
		return d
	}

	fn := reflect.ValueOf(ctor)
	ft := fn.Type()

	switch {
	case ft.Kind() != reflect.Func:
		d.ctorErr = fmt.Sprintf("constructor is %s, not a function", ft)
	case fn.IsNil():
		d.ctorErr = "constructor is a nil function"
	case ft.IsVariadic():
		d.ctorErr = fmt.Sprintf("constructor %s is variadic", ft)
	case ft.NumOut() == 0 || ft.NumOut() > 2:
		d.ctorErr = fmt.Sprintf("constructor %s must return the handler and optionally an error", ft)
	case ft.NumOut() == 2 && ft.Out(1) != errorType:
		d.ctorErr = fmt.Sprintf("constructor %s: second result must be error", ft)
	case !ft.Out(0).AssignableTo(handlerType):
		d.ctorErr = fmt.Sprintf("constructor returns %s, not %s", ft.Out(0), handlerType)
	}
	if d.ctorErr != "" {
		return d
	}

	d.dependencies = make([]reflect.Type, ft.NumIn())
	for i := range d.dependencies {
		d.dependencies[i] = ft.In(i)
	}
	d.ctor = fn

	return d
}

func newFactoryDescriptor[H any](contract Contract, factory func(l Locator) (H, error), invoke invokeFunc) *HandlerDescriptor {
	d := &HandlerDescriptor{
		contract:    contract,
		handlerType: typeOf[H](),
		invoke:      invoke,
	}

	if factory == nil {
		d.ctorErr = "no factory registered"
		return d
	}

	d.factory = func(l Locator) (any, error) {
		h, err := factory(l)
		if err != nil {
			return nil, err
		}
		return h, nil
	}

	return d
}

// construct builds a fresh handler instance, resolving every dependency
// through l first. Nothing is constructed unless all dependencies resolve.
func (d *HandlerDescriptor) construct(l Locator) (any, error) {
	if d.factory != nil {
		h, err := d.factory(l)
		if err != nil {
			return nil, d.attribute(err)
		}
		if isNil(h) {
			return nil, d.noConstructor("factory returned a nil handler")
		}
		return h, nil
	}

	if d.ctorErr != "" {
		return nil, d.noConstructor(d.ctorErr)
	}

	args := make([]reflect.Value, len(d.dependencies))
	for i, dep := range d.dependencies {
		v, ok := l.Resolve(dep)
		if !ok || v == nil {
			return nil, d.missing(dep, "")
		}

		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(dep) {
			return nil, d.missing(dep, fmt.Sprintf("service locator returned %T", v))
		}
		args[i] = rv
	}

	out := d.ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, fmt.Errorf("construct %s: %w", d.handlerType, out[1].Interface().(error))
	}

	h := out[0].Interface()
	if isNil(h) {
		return nil, d.noConstructor("constructor returned a nil handler")
	}

	return h, nil
}

// attribute fills in the handler and contract on resolution errors raised
// inside a factory, which only knows the dependency it asked for.
func (d *HandlerDescriptor) attribute(err error) error {
	var re *ResolutionError
	if errors.As(err, &re) && re.Handler == nil {
		attributed := *re
		attributed.Handler = d.handlerType
		attributed.Contract = d.contract
		return &attributed
	}
	return fmt.Errorf("construct %s: %w", d.handlerType, err)
}

func (d *HandlerDescriptor) missing(dep reflect.Type, reason string) error {
	return &ResolutionError{
		Kind:       ErrMissingDependency,
		Contract:   d.contract,
		Handler:    d.handlerType,
		Dependency: dep,
		Reason:     reason,
	}
}

func (d *HandlerDescriptor) noConstructor(reason string) error {
	return &ResolutionError{
		Kind:     ErrNoConstructor,
		Contract: d.contract,
		Handler:  d.handlerType,
		Reason:   reason,
	}
}

func commandInvoker[C Command]() invokeFunc {
	return func(ctx context.Context, handler, request any) (any, error) {
		h, ok := handler.(CommandHandler[C])
		if !ok {
			return nil, fmt.Errorf("send %T to %T: %w", request, handler, ErrHandlerTypeMismatch)
		}

		cmd, ok := request.(C)
		if !ok {
			return nil, fmt.Errorf("send %T to %T: %w", request, handler, ErrHandlerTypeMismatch)
		}

		return nil, h.Handle(ctx, cmd)
	}
}

func queryInvoker[Q Query[R], R any]() invokeFunc {
	return func(ctx context.Context, handler, request any) (any, error) {
		h, ok := handler.(QueryHandler[Q, R])
		if !ok {
			return nil, fmt.Errorf("ask %T of %T: %w", request, handler, ErrHandlerTypeMismatch)
		}

		q, ok := request.(Q)
		if !ok {
			return nil, fmt.Errorf("ask %T of %T: %w", request, handler, ErrHandlerTypeMismatch)
		}

		return h.Handle(ctx, q)
	}
}
