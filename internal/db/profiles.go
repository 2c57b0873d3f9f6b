package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetProfileByAuthUser retrieves the profile row for an authenticated user.
// Returns nil if the user has not selected a role yet.
func (db *DB) GetProfileByAuthUser(ctx context.Context, authUserID uuid.UUID) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT id, auth_user_id, role, created_at
		 FROM profiles WHERE auth_user_id = $1`,
		authUserID,
	).Scan(&p.ID, &p.AuthUserID, &p.Role, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// CreateProfile creates the profile row for an authenticated user at
// role-selection time. The role is immutable: if a profile already exists
// the existing row is returned unchanged regardless of the requested role.
func (db *DB) CreateProfile(ctx context.Context, authUserID uuid.UUID, role string) (*Profile, error) {
	if role != RoleFounder && role != RoleEmployee {
		return nil, fmt.Errorf("invalid role: %q", role)
	}

	var p Profile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (auth_user_id, role)
		 VALUES ($1, $2)
		 ON CONFLICT (auth_user_id) DO UPDATE SET role = profiles.role
		 RETURNING id, auth_user_id, role, created_at`,
		authUserID, role,
	).Scan(&p.ID, &p.AuthUserID, &p.Role, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &p, nil
}
