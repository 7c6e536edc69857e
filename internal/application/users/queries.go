package users

import (
	"context"

	"github.com/hubertnosek100/hmediator/internal/application/mediator"
	"github.com/hubertnosek100/hmediator/internal/domain/user"
)

// GetUserQuery fetches one user by ID
type GetUserQuery struct {
	mediator.BaseQuery[*user.User]

	ID string
}

// GetUserHandler handles GetUserQuery
type GetUserHandler struct {
	store user.Store
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(store user.Store) *GetUserHandler {
	return &GetUserHandler{store: store}
}

// Handle loads the user
func (h *GetUserHandler) Handle(ctx context.Context, query GetUserQuery) (*user.User, error) {
	return h.store.FindByID(ctx, query.ID)
}

// ListUsersQuery lists every user
type ListUsersQuery struct {
	mediator.BaseQuery[[]*user.User]
}

// ListUsersHandler handles ListUsersQuery
type ListUsersHandler struct {
	store user.Store
}

// Handle returns all users
func (h *ListUsersHandler) Handle(ctx context.Context, _ ListUsersQuery) ([]*user.User, error) {
	return h.store.List(ctx)
}

func newListUsersHandler(l mediator.Locator) (*ListUsersHandler, error) {
	store, err := mediator.Resolve[user.Store](l)
	if err != nil {
		return nil, err
	}
	return &ListUsersHandler{store: store}, nil
}
