// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/stockroomhq/stockroom/internal/logging"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/store"
)

// ErrInvalidCredentials is returned for any login failure. Unknown email
// and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore verifies login credentials against the users collection.
type UserStore struct {
	users *store.Collection[models.User]
}

// NewUserStore creates a user store over the given collection.
func NewUserStore(users *store.Collection[models.User]) *UserStore {
	return &UserStore{users: users}
}

// Authenticate verifies an email and password pair. Email matching is
// case-insensitive; the password is checked against the stored bcrypt hash.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	all, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range all {
		if strings.ToLower(user.Email) != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			logging.Warn().Str("email", email).Msg("login rejected: wrong password")
			return nil, ErrInvalidCredentials
		}
		return &user, nil
	}

	logging.Warn().Str("email", email).Msg("login rejected: unknown email")
	return nil, ErrInvalidCredentials
}
