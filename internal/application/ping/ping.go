package ping

import (
	"context"

	"github.com/hubertnosek100/hmediator/internal/application/mediator"
)

// PingQuery checks that the mediator is wired
type PingQuery struct {
	mediator.BaseQuery[string]
}

// PingHandler answers PingQuery
type PingHandler struct{}

// NewPingHandler creates a new ping handler
func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

// Handle returns "pong"
func (h *PingHandler) Handle(ctx context.Context, _ PingQuery) (string, error) {
	return "pong", nil
}

// Register adds the ping handler to r
func Register(r *mediator.Registry) error {
	return mediator.RegisterQuery[PingQuery, string, *PingHandler](r, NewPingHandler)
}
