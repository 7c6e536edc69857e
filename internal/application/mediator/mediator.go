package mediator

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/hubertnosek100/hmediator/internal/application/logging"
)

// Mediator dispatches commands and queries to the single handler registered
// for the request's concrete type. A fresh handler is constructed for every
// call and discarded afterwards; the Mediator holds no per-call state and
// can be used from many goroutines at once.
type Mediator struct {
	registry *Registry
	locator  Locator
	observer Observer
	logger   logging.Logger
}

// Option configures a Mediator
type Option func(*Mediator)

// WithObserver reports every dispatch outcome to o
func WithObserver(o Observer) Option {
	return func(m *Mediator) { m.observer = o }
}

// WithLogger sets the logger used for dispatch diagnostics. Without it the
// logger carried by each call's context is used.
func WithLogger(l logging.Logger) Option {
	return func(m *Mediator) { m.logger = l }
}

// New creates a mediator over registry, resolving handler dependencies
// through locator. A nil locator resolves nothing.
func New(registry *Registry, locator Locator, opts ...Option) *Mediator {
	if registry == nil {
		registry = NewRegistry()
	}
	if locator == nil {
		locator = NewServiceLocator(nil)
	}

	m := &Mediator{
		registry: registry,
		locator:  locator,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Registry returns the registry the mediator resolves handlers from
func (m *Mediator) Registry() *Registry {
	return m.registry
}

// Send dispatches cmd to its CommandHandler
func (m *Mediator) Send(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return ErrNilRequest
	}

	_, err := m.dispatch(ctx, cmd, CommandContract(reflect.TypeOf(cmd)))
	return err
}

// Ask dispatches q to its QueryHandler and returns the handler's result.
// R is usually given explicitly: mediator.Ask[*user.User](ctx, m, query).
func Ask[R any](ctx context.Context, m *Mediator, q Query[R]) (R, error) {
	var zero R
	if q == nil {
		return zero, ErrNilRequest
	}

	contract := QueryContract(reflect.TypeOf(q), typeOf[R]())
	res, err := m.dispatch(ctx, q, contract)
	if err != nil {
		return zero, err
	}

	if res == nil {
		return zero, nil
	}

	r, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("ask %s: result %T: %w", contract, res, ErrHandlerTypeMismatch)
	}

	return r, nil
}

func (m *Mediator) dispatch(ctx context.Context, request any, contract Contract) (any, error) {
	logger := m.loggerFor(ctx)
	start := time.Now()

	handlerType, result, err := m.run(ctx, request, contract)

	record := DispatchRecord{
		Contract: contract,
		Handler:  handlerType,
		Duration: time.Since(start),
		Err:      err,
	}
	if m.observer != nil {
		m.observer.ObserveDispatch(record)
	}

	if err != nil {
		logger.Log(logging.LevelError, fmt.Sprintf("[Mediator] %s failed", contract.RequestName()), map[string]interface{}{
			"contract":   contract.String(),
			"error_kind": record.Status(),
			"error":      err.Error(),
		})
		return nil, err
	}

	logger.Log(logging.LevelDebug, fmt.Sprintf("[Mediator] %s handled", contract.RequestName()), map[string]interface{}{
		"contract":    contract.String(),
		"handler":     typeName(handlerType),
		"duration_ms": record.Duration.Milliseconds(),
	})

	return result, nil
}

// run is the dispatch pipeline: find the handler type, resolve its
// dependencies, construct it, invoke it once.
func (m *Mediator) run(ctx context.Context, request any, contract Contract) (reflect.Type, any, error) {
	desc, err := m.registry.FindHandlerType(contract)
	if err != nil {
		return nil, nil, err
	}

	handler, err := desc.construct(m.locator)
	if err != nil {
		return desc.handlerType, nil, err
	}

	result, err := desc.invoke(ctx, handler, request)
	return desc.handlerType, result, err
}

func (m *Mediator) loggerFor(ctx context.Context) logging.Logger {
	if m.logger != nil {
		return m.logger
	}
	return logging.LoggerFromContext(ctx)
}
