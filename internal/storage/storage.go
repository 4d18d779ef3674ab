package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/pilot-auth/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	// FindByAccount matches the identifier against account name or email.
	FindByAccount(ctx context.Context, identifier string) (models.User, error)
	// RotateTokenVersion increments the user's token version and returns the
	// new value. Tokens carrying an older version are no longer accepted.
	RotateTokenVersion(ctx context.Context, id int64) (int64, error)
}
