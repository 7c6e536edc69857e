package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/hubertnosek100/hmediator/internal/application/logging"
	"github.com/hubertnosek100/hmediator/internal/application/mediator"
	"github.com/hubertnosek100/hmediator/internal/domain/user"
)

// CreateUserCommand registers a new user under a caller-chosen ID
type CreateUserCommand struct {
	mediator.BaseCommand

	ID    string
	Name  string
	Email string
}

// CreateUserHandler handles CreateUserCommand
type CreateUserHandler struct {
	store user.Store
	clock user.Clock
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(store user.Store, clock user.Clock) *CreateUserHandler {
	return &CreateUserHandler{
		store: store,
		clock: clock,
	}
}

// Handle validates and persists the user
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) error {
	u, err := user.NewUser(cmd.ID, cmd.Name, cmd.Email, h.clock.Now())
	if err != nil {
		return err
	}

	existing, err := h.store.FindByID(ctx, u.ID)
	switch {
	case err == nil && existing != nil:
		return fmt.Errorf("%w: %s", user.ErrUserExists, u.ID)
	case err != nil && !errors.Is(err, user.ErrUserNotFound):
		return fmt.Errorf("failed to check user %s: %w", u.ID, err)
	}

	if err := h.store.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, fmt.Sprintf("[CreateUser] Created user %s", u.ID), map[string]interface{}{
		"email": u.Email,
	})

	return nil
}
