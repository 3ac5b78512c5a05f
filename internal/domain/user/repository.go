package user

import "context"

// Repository stores registered accounts. Users are never edited or
// removed once created.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByEmail looks up the login identity
	GetByEmail(ctx context.Context, email string) (*User, error)
}
