package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Sivaji4829/attendance-backend/internal/store"
)

// User is an operator (admin or faculty) who can mark attendance.
type User struct {
	ID        int       `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists operator accounts in Postgres.
type Repository struct {
	db store.DBTX
}

// NewRepository creates a repo.
func NewRepository(db store.DBTX) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns it without the password hash.
func (r *Repository) Create(ctx context.Context, fullName, email, passwordHash, role string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, full_name, email, role, created_at
	`, fullName, email, passwordHash, role)
	var u User
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

// GetByEmail returns a user and their password hash, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, role, password_hash, created_at
		FROM users WHERE email = $1
	`, email)
	var u User
	var hash string
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &hash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, hash, nil
}

// GetByID returns a user without credentials, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id int) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, role, created_at
		FROM users WHERE id = $1
	`, id)
	var u User
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
