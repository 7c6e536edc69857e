package mediator_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/hubertnosek100/hmediator/internal/application/mediator"
)

var errBoom = errors.New("boom")

// Greeter is a dependency that no locator provides unless a test sets it
type Greeter interface {
	Greet(name string) string
}

type englishGreeter struct{}

func (englishGreeter) Greet(name string) string { return "hello " + name }

// GreetQuery needs a Greeter to be answered
type GreetQuery struct {
	mediator.BaseQuery[string]
	Name string
}

type GreetHandler struct {
	greeter Greeter
}

func NewGreetHandler(g Greeter) *GreetHandler {
	return &GreetHandler{greeter: g}
}

func (h *GreetHandler) Handle(ctx context.Context, q GreetQuery) (string, error) {
	return h.greeter.Greet(q.Name), nil
}

// RecordCommand appends its value to a shared Journal
type RecordCommand struct {
	mediator.BaseCommand
	Value string
}

type Journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *Journal) Add(v string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, v)
}

func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

type RecordHandler struct {
	journal *Journal
}

func NewRecordHandler(j *Journal) *RecordHandler {
	return &RecordHandler{journal: j}
}

func (h *RecordHandler) Handle(ctx context.Context, cmd RecordCommand) error {
	h.journal.Add(cmd.Value)
	return nil
}

// FailCommand is always rejected by its handler
type FailCommand struct {
	mediator.BaseCommand
}

type FailHandler struct{}

func (FailHandler) Handle(ctx context.Context, _ FailCommand) error {
	return errBoom
}

// GetWidgetQuery has two handlers when a test registers both
type GetWidgetQuery struct {
	mediator.BaseQuery[string]
}

type WidgetHandlerA struct{}

func (*WidgetHandlerA) Handle(ctx context.Context, _ GetWidgetQuery) (string, error) {
	return "a", nil
}

type WidgetHandlerB struct{}

func (*WidgetHandlerB) Handle(ctx context.Context, _ GetWidgetQuery) (string, error) {
	return "b", nil
}

// WhoAmIQuery returns the handler instance that served it
type WhoAmIQuery struct {
	mediator.BaseQuery[*InstanceHandler]
}

type InstanceHandler struct{}

func (h *InstanceHandler) Handle(ctx context.Context, _ WhoAmIQuery) (*InstanceHandler, error) {
	return h, nil
}

// UnhandledQuery never has a handler
type UnhandledQuery struct {
	mediator.BaseQuery[string]
}

// countingCtor wraps a no-argument constructor and counts its calls
func countingCtor[H any](calls *atomic.Int32, build func() H) func() H {
	return func() H {
		calls.Add(1)
		return build()
	}
}

// logEntry is one captured Log call
type logEntry struct {
	level    string
	message  string
	metadata map[string]interface{}
}

type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *captureLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, message: message, metadata: metadata})
}

func (l *captureLogger) Entries() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}
