package users_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubertnosek100/hmediator/internal/application/mediator"
	"github.com/hubertnosek100/hmediator/internal/application/users"
	"github.com/hubertnosek100/hmediator/internal/domain/user"
	"github.com/hubertnosek100/hmediator/test/helpers"
)

func newUserMediator(t *testing.T, store *helpers.MockUserStore, now time.Time) *mediator.Mediator {
	t.Helper()

	registry := mediator.NewRegistry(mediator.WithEagerAmbiguityCheck())
	require.NoError(t, users.Register(registry))
	require.NoError(t, registry.Validate())

	locator := helpers.NewMockLocator().
		Set(helpers.TypeOf[user.Store](), store).
		Set(helpers.TypeOf[user.Clock](), helpers.FixedClock{At: now})

	return mediator.New(registry, locator)
}

func TestCreateUser_PersistsValidatedUser(t *testing.T) {
	// Arrange
	store := helpers.NewMockUserStore()
	now := time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)
	m := newUserMediator(t, store, now)

	// Act
	err := m.Send(context.Background(), users.CreateUserCommand{
		ID:    "  u-1 ",
		Name:  " Ada ",
		Email: "ada@example.com",
	})

	// Assert
	require.NoError(t, err)
	found, err := store.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)
	assert.Equal(t, now, found.CreatedAt)
}

func TestCreateUser_RejectsInvalidInput(t *testing.T) {
	// Arrange
	store := helpers.NewMockUserStore()
	m := newUserMediator(t, store, time.Now())

	// Act
	err := m.Send(context.Background(), users.CreateUserCommand{ID: "u-1", Name: "", Email: "not-an-email"})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name failed required")
	assert.Contains(t, err.Error(), "email failed email")
	assert.Empty(t, store.SaveCalls())
}

func TestCreateUser_RejectsDuplicateID(t *testing.T) {
	// Arrange
	store := helpers.NewMockUserStore()
	store.AddUser(&user.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"})
	m := newUserMediator(t, store, time.Now())

	// Act
	err := m.Send(context.Background(), users.CreateUserCommand{ID: "u-1", Name: "Grace", Email: "grace@example.com"})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrUserExists)
	assert.Empty(t, store.SaveCalls())
}

func TestCreateUser_LookupFailureDoesNotOverwrite(t *testing.T) {
	// Arrange
	lookupErr := errors.New("connection reset")
	store := helpers.NewMockUserStore()
	store.AddUser(&user.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"})
	store.SetFindError(lookupErr)
	m := newUserMediator(t, store, time.Now())

	// Act
	err := m.Send(context.Background(), users.CreateUserCommand{ID: "u-1", Name: "Mallory", Email: "mallory@example.com"})

	// Assert
	assert.ErrorIs(t, err, lookupErr)
	assert.Empty(t, store.SaveCalls())
	store.SetFindError(nil)
	kept, err := store.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", kept.Name)
}

func TestCreateUser_StoreFailureIsWrapped(t *testing.T) {
	// Arrange
	storeErr := errors.New("disk full")
	store := helpers.NewMockUserStore()
	store.SetSaveError(storeErr)
	m := newUserMediator(t, store, time.Now())

	// Act
	err := m.Send(context.Background(), users.CreateUserCommand{ID: "u-1", Name: "Ada", Email: "ada@example.com"})

	// Assert
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, "handler_error", mediator.ErrorKind(err))
}

func TestGetUser_ReturnsStoredUser(t *testing.T) {
	// Arrange
	store := helpers.NewMockUserStore()
	store.AddUser(&user.User{ID: "u-7", Name: "Ada", Email: "ada@example.com"})
	m := newUserMediator(t, store, time.Now())

	// Act
	found, err := mediator.Ask[*user.User](context.Background(), m, users.GetUserQuery{ID: "u-7"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)
}

func TestGetUser_UnknownIDIsNotFound(t *testing.T) {
	// Arrange
	m := newUserMediator(t, helpers.NewMockUserStore(), time.Now())

	// Act
	found, err := mediator.Ask[*user.User](context.Background(), m, users.GetUserQuery{ID: "missing"})

	// Assert
	assert.Nil(t, found)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestListUsers_UsesFactoryRegisteredHandler(t *testing.T) {
	// Arrange
	store := helpers.NewMockUserStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.AddUser(&user.User{ID: "b", Name: "Second", Email: "b@example.com", CreatedAt: base.Add(time.Hour)})
	store.AddUser(&user.User{ID: "a", Name: "First", Email: "a@example.com", CreatedAt: base})
	m := newUserMediator(t, store, time.Now())

	// Act
	all, err := mediator.Ask[[]*user.User](context.Background(), m, users.ListUsersQuery{})

	// Assert
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}

func TestListUsers_MissingStoreIsReported(t *testing.T) {
	// Arrange
	registry := mediator.NewRegistry()
	require.NoError(t, users.Register(registry))
	m := mediator.New(registry, helpers.NewMockLocator())

	// Act
	_, err := mediator.Ask[[]*user.User](context.Background(), m, users.ListUsersQuery{})

	// Assert
	assert.ErrorIs(t, err, mediator.ErrMissingDependency)
	assert.Contains(t, err.Error(), "user.Store")
	assert.Contains(t, err.Error(), "ListUsersHandler")
}
