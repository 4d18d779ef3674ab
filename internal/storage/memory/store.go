// Package memory is an in-process UserStore used when no database is
// configured and in tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/pilot-auth/internal/models"
	"github.com/hongminglow/pilot-auth/internal/storage"
)

var _ storage.UserStore = (*Store)(nil)

// Store keeps users in a map guarded by a mutex.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]models.User
}

// New returns an empty store.
func New() *Store {
	return &Store{users: make(map[int64]models.User)}
}

// CreateUser assigns an id and creation time and stores the user. A user
// whose account or email would resolve to an existing user through
// FindByAccount is rejected.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if collides(existing, user) {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.TokenVersion = 0
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = user
	return user, nil
}

// FindByID fetches a user by id.
func (s *Store) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// FindByAccount returns the user whose account or email equals identifier.
// An account match wins over an email match.
func (s *Store) FindByAccount(_ context.Context, identifier string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var byEmail *models.User
	for _, user := range s.users {
		if user.Account == identifier {
			return user, nil
		}
		if byEmail == nil && strings.EqualFold(user.Email, identifier) {
			byEmail = &user
		}
	}
	if byEmail != nil {
		return *byEmail, nil
	}
	return models.User{}, storage.ErrNotFound
}

func collides(a, b models.User) bool {
	return a.Account == b.Account ||
		strings.EqualFold(a.Email, b.Email) ||
		strings.EqualFold(a.Account, b.Email) ||
		strings.EqualFold(a.Email, b.Account)
}

// RotateTokenVersion bumps the stored token version.
func (s *Store) RotateTokenVersion(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return 0, storage.ErrNotFound
	}
	user.TokenVersion++
	s.users[id] = user
	return user.TokenVersion, nil
}
