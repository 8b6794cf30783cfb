package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
)

// Repository is the local user directory. Emails are matched
// case-insensitively.
type Repository interface {
	// Get returns common.ErrorNotFound when no record has email.
	Get(ctx context.Context, email string) (*models.UserWithSecret, error)
	// Insert appends rec, or fails with common.ErrorAlreadyExists.
	Insert(ctx context.Context, rec models.UserWithSecret) error
	// List returns all records in insertion order.
	List(ctx context.Context) ([]models.UserWithSecret, error)
}
