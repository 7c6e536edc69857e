package mediator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Scope decides which registered handlers are candidates for a request
type Scope int

const (
	// ScopeRequestPackage only considers handlers declared in the same Go
	// package as the request type.
	ScopeRequestPackage Scope = iota
	// ScopeGlobal considers every registered handler.
	ScopeGlobal
)

func (s Scope) String() string {
	switch s {
	case ScopeRequestPackage:
		return "package"
	case ScopeGlobal:
		return "global"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ParseScope parses the configuration spelling of a Scope
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "package":
		return ScopeRequestPackage, nil
	case "global":
		return ScopeGlobal, nil
	default:
		return 0, fmt.Errorf("unknown handler scope %q", s)
	}
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithScope sets the handler discovery scope
func WithScope(s Scope) RegistryOption {
	return func(r *Registry) { r.scope = s }
}

// WithEagerAmbiguityCheck rejects a second handler for an already served
// contract at registration time instead of at dispatch time.
func WithEagerAmbiguityCheck() RegistryOption {
	return func(r *Registry) { r.eager = true }
}

// Registry is the set of handler types visible to a Mediator.
// It is safe for concurrent use; lookups never block each other.
type Registry struct {
	mu       sync.RWMutex
	handlers []*HandlerDescriptor
	scope    Scope
	eager    bool
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scope returns the registry's discovery scope
func (r *Registry) Scope() Scope {
	return r.scope
}

// RegisterCommand registers handler type H for commands of type C. ctor is a
// constructor function such as func(Store, Clock) *H or func(Store) (*H, error);
// its parameters are resolved through the Locator on every dispatch.
func RegisterCommand[C Command, H CommandHandler[C]](r *Registry, ctor any) error {
	contract := CommandContract(typeOf[C]())
	return r.add(newConstructorDescriptor(contract, typeOf[H](), ctor, commandInvoker[C]()))
}

// RegisterQuery registers handler type H for queries of type Q producing R.
// See RegisterCommand for the constructor rules.
func RegisterQuery[Q Query[R], R any, H QueryHandler[Q, R]](r *Registry, ctor any) error {
	contract := QueryContract(typeOf[Q](), typeOf[R]())
	return r.add(newConstructorDescriptor(contract, typeOf[H](), ctor, queryInvoker[Q, R]()))
}

// RegisterCommandFactory registers handler type H for commands of type C,
// built by factory. The factory resolves its own dependencies, typically
// with Resolve.
func RegisterCommandFactory[C Command, H CommandHandler[C]](r *Registry, factory func(l Locator) (H, error)) error {
	contract := CommandContract(typeOf[C]())
	return r.add(newFactoryDescriptor(contract, factory, commandInvoker[C]()))
}

// RegisterQueryFactory registers handler type H for queries of type Q producing R, built by factory.
func RegisterQueryFactory[Q Query[R], R any, H QueryHandler[Q, R]](r *Registry, factory func(l Locator) (H, error)) error {
	contract := QueryContract(typeOf[Q](), typeOf[R]())
	return r.add(newFactoryDescriptor(contract, factory, queryInvoker[Q, R]()))
}

func (r *Registry) add(d *HandlerDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.handlers {
		if existing.contract != d.contract {
			continue
		}

		if existing.handlerType == d.handlerType {
			return fmt.Errorf("register %s for %s: %w", d.handlerType, d.contract, ErrDuplicateRegistration)
		}

		if r.eager && r.inScope(d.contract, existing) && r.inScope(d.contract, d) {
			return &ResolutionError{
				Kind:       ErrAmbiguousHandler,
				Contract:   d.contract,
				Candidates: []reflect.Type{existing.handlerType, d.handlerType},
			}
		}
	}

	r.handlers = append(r.handlers, d)
	return nil
}

// FindHandlerType returns the single handler implementing contract.
// Every call scans the full registration list; results are not cached.
func (r *Registry) FindHandlerType(contract Contract) (*HandlerDescriptor, error) {
	r.mu.RLock()
	var matches []*HandlerDescriptor
	for _, d := range r.handlers {
		if d.contract == contract && r.inScope(contract, d) {
			matches = append(matches, d)
		}
	}
	r.mu.RUnlock()

	switch len(matches) {
	case 0:
		return nil, &ResolutionError{Kind: ErrHandlerNotFound, Contract: contract}
	case 1:
		return matches[0], nil
	default:
		candidates := make([]reflect.Type, len(matches))
		for i, m := range matches {
			candidates[i] = m.handlerType
		}
		return nil, &ResolutionError{
			Kind:       ErrAmbiguousHandler,
			Contract:   contract,
			Candidates: candidates,
		}
	}
}

// Contracts lists every contract with at least one registration, sorted by name
func (r *Registry) Contracts() []Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Contract]bool, len(r.handlers))
	contracts := make([]Contract, 0, len(r.handlers))
	for _, d := range r.handlers {
		if seen[d.contract] {
			continue
		}
		seen[d.contract] = true
		contracts = append(contracts, d.contract)
	}

	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].String() < contracts[j].String()
	})

	return contracts
}

// Handlers returns a snapshot of every registration, sorted by contract
func (r *Registry) Handlers() []*HandlerDescriptor {
	r.mu.RLock()
	handlers := append([]*HandlerDescriptor(nil), r.handlers...)
	r.mu.RUnlock()

	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].contract.String() < handlers[j].contract.String()
	})

	return handlers
}

// Validate checks the registry the way dispatch would: every registered
// contract must resolve to exactly one handler in scope, and every handler
// must be constructible. Dependencies are not resolved. All problems are
// reported together.
func (r *Registry) Validate() error {
	var errs []error

	for _, contract := range r.Contracts() {
		if _, err := r.FindHandlerType(contract); err != nil {
			errs = append(errs, err)
		}
	}

	for _, d := range r.Handlers() {
		if !d.HasConstructor() {
			errs = append(errs, d.noConstructor(d.ctorErr))
		}
	}

	return errors.Join(errs...)
}

func (r *Registry) inScope(contract Contract, d *HandlerDescriptor) bool {
	if r.scope == ScopeGlobal {
		return true
	}
	return packageOf(contract.Request) == packageOf(d.handlerType)
}
