package testutil

import (
	"context"
	"sync"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/user"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
)

// InMemoryUserStore implements user.Repository over a map for service tests.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]*user.User),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ierr.NewError("email is already in use").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ierr.NewErrorf("user %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ierr.NewErrorf("user with email %s was not found", email).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ierr.NewErrorf("user %s was not found", u.ID).
			Mark(ierr.ErrNotFound)
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *InMemoryUserStore) List(ctx context.Context) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*user.User, 0, len(s.users))
	for _, u := range s.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (s *InMemoryUserStore) CountActiveByRole(ctx context.Context, role types.Role) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, u := range s.users {
		if u.Active && u.HasRole(role) {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryUserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*user.User)
}
