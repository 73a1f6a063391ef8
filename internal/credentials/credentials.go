// Package credentials handles linguist registration and password
// verification on top of the user store.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/linguahub/linguahub/internal/storage"
)

// Service registers users and verifies login credentials. Usernames are
// lowercased before every store operation so lookups are case-insensitive.
type Service struct {
	users storage.UserStore
}

// NewService creates a credential service backed by the given user store.
func NewService(users storage.UserStore) *Service {
	return &Service{users: users}
}

// Register hashes the plaintext password and persists the user record. It
// returns storage.ErrDuplicateUsername when the username is already taken;
// the plaintext is never stored. The created record's lowercased username is
// returned for session binding.
func (s *Service) Register(ctx context.Context, user storage.User, plaintext string) (storage.User, error) {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	if user.Username == "" {
		return storage.User{}, fmt.Errorf("username is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return storage.User{}, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return storage.User{}, err
	}
	user.ID = id
	return user, nil
}

// Verify looks up the username and compares the supplied password against
// the stored hash. Unknown usernames and wrong passwords are reported
// identically, as a false match with no error.
func (s *Service) Verify(ctx context.Context, username, plaintext string) (storage.User, bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.User{}, false, nil
		}
		return storage.User{}, false, fmt.Errorf("look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) != nil {
		return storage.User{}, false, nil
	}
	return user, true, nil
}
