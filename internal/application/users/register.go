package users

import (
	"fmt"

	"github.com/hubertnosek100/hmediator/internal/application/mediator"
	"github.com/hubertnosek100/hmediator/internal/domain/user"
)

// Register adds the user handlers to r
func Register(r *mediator.Registry) error {
	if err := mediator.RegisterCommand[CreateUserCommand, *CreateUserHandler](r, NewCreateUserHandler); err != nil {
		return fmt.Errorf("failed to register CreateUser handler: %w", err)
	}

	if err := mediator.RegisterQuery[GetUserQuery, *user.User, *GetUserHandler](r, NewGetUserHandler); err != nil {
		return fmt.Errorf("failed to register GetUser handler: %w", err)
	}

	if err := mediator.RegisterQueryFactory[ListUsersQuery, []*user.User, *ListUsersHandler](r, newListUsersHandler); err != nil {
		return fmt.Errorf("failed to register ListUsers handler: %w", err)
	}

	return nil
}
