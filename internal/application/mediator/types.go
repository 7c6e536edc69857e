package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// Command represents a request that carries intent and produces no result.
// Request types satisfy it by embedding BaseCommand.
type Command interface {
	isCommand()
}

// Query represents a request whose handler produces a result of type R.
// Request types satisfy it by embedding BaseQuery[R].
type Query[R any] interface {
	queryResult() R
}

// BaseCommand marks the embedding struct as a Command.
type BaseCommand struct{}

func (BaseCommand) isCommand() {}

// BaseQuery marks the embedding struct as a Query returning R.
type BaseQuery[R any] struct{}

func (BaseQuery[R]) queryResult() (r R) { return r }

// CommandHandler handles commands of type C
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler handles queries of type Q and returns a result of type R
type QueryHandler[Q Query[R], R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Kind distinguishes the two handler contract shapes
type Kind int

const (
	KindCommand Kind = iota + 1
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Contract identifies one handler contract instantiation: the request type it
// handles and, for queries, the result type it produces.
// Contracts are comparable and used directly as lookup keys.
type Contract struct {
	Kind    Kind
	Request reflect.Type
	Result  reflect.Type
}

// CommandContract returns the contract CommandHandler[request]
func CommandContract(request reflect.Type) Contract {
	return Contract{Kind: KindCommand, Request: request}
}

// QueryContract returns the contract QueryHandler[request,result]
func QueryContract(request, result reflect.Type) Contract {
	return Contract{Kind: KindQuery, Request: request, Result: result}
}

// String renders the contract the way it reads in Go source, e.g.
// "QueryHandler[ping.PingQuery,string]".
func (c Contract) String() string {
	switch c.Kind {
	case KindCommand:
		return fmt.Sprintf("CommandHandler[%s]", typeName(c.Request))
	case KindQuery:
		return fmt.Sprintf("QueryHandler[%s,%s]", typeName(c.Request), typeName(c.Result))
	default:
		return fmt.Sprintf("Contract[%s]", typeName(c.Request))
	}
}

// RequestName returns the bare name of the contract's request type
func (c Contract) RequestName() string {
	return RequestName(c.Request)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
