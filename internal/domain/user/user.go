package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrUserNotFound is returned by stores when no user has the requested ID
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned by Store.Create when the ID or email is taken
var ErrUserExists = errors.New("user already exists")

var validate = validator.New()

// User is a registered account
type User struct {
	ID        string `validate:"required"`
	Name      string `validate:"required,max=64"`
	Email     string `validate:"required,email"`
	CreatedAt time.Time
}

// NewUser creates a validated user
func NewUser(id, name, email string, createdAt time.Time) (*User, error) {
	u := &User{
		ID:        strings.TrimSpace(id),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		CreatedAt: createdAt,
	}

	if err := validate.Struct(u); err != nil {
		return nil, formatValidationError(err)
	}

	return u, nil
}

// NewID returns a fresh user identifier
func NewID() string {
	return uuid.NewString()
}

// Store persists users
type Store interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// Clock supplies the current time to handlers
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s failed %s", strings.ToLower(e.Field()), e.Tag()))
	}

	return fmt.Errorf("invalid user: %s", strings.Join(messages, ", "))
}
