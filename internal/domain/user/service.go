package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// Register creates an account with a bcrypt password hash
	Register(ctx context.Context, name, email, password string) (*User, error)

	// Authenticate checks credentials and returns the matching user
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}
