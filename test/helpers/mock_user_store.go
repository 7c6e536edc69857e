package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hubertnosek100/hmediator/internal/domain/user"
)

// MockUserStore is an in-memory test double for user.Store
type MockUserStore struct {
	mu      sync.RWMutex
	users   map[string]*user.User
	saved   []*user.User
	saveErr error
	findErr error
}

// NewMockUserStore creates a new mock user store
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[string]*user.User),
	}
}

// AddUser seeds the store without recording a Save call
func (m *MockUserStore) AddUser(u *user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// SetSaveError makes every subsequent Create or Save fail with err
func (m *MockUserStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SetFindError makes every subsequent FindByID fail with err
func (m *MockUserStore) SetFindError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findErr = err
}

// Create stores u only if its ID is unused and records the call
func (m *MockUserStore) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.users[u.ID]; ok {
		return fmt.Errorf("%w: %s", user.ErrUserExists, u.ID)
	}

	m.users[u.ID] = u
	m.saved = append(m.saved, u)
	return nil
}

// Save stores u and records the call
func (m *MockUserStore) Save(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}

	m.users[u.ID] = u
	m.saved = append(m.saved, u)
	return nil
}

// FindByID retrieves a user by ID
func (m *MockUserStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findErr != nil {
		return nil, m.findErr
	}

	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", user.ErrUserNotFound, id)
	}

	return u, nil
}

// List returns all users ordered by creation time, then ID
func (m *MockUserStore) List(ctx context.Context) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	return all, nil
}

// SaveCalls returns every user stored through Create or Save, in call order
func (m *MockUserStore) SaveCalls() []*user.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*user.User(nil), m.saved...)
}

// FixedClock is a user.Clock that always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}
