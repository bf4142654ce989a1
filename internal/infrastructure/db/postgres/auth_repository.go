package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/institutpi/events-api/internal/core/domain"
)

// AuthRepository looks up admin users in the admin_users table.
type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindByEmail retrieves an admin user by email address.
func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admin_users
		WHERE email = $1`, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin user: %w", err)
	}
	return &u, nil
}
