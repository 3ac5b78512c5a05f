package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/festhub/eventhub/internal/domain/user"
	"github.com/festhub/eventhub/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Role, now.Unix(), now.Unix(),
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return errors.Conflict("Email already registered")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) scanOne(row *sql.Row) (*user.User, error) {
	var u user.User
	var createdAt, updatedAt int64

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)

	return &u, nil
}
