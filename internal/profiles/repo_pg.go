package profiles

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the profile for a user.
func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, email, name, picture_url, created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var profile Profile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Email,
		&profile.Name,
		&profile.PictureURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return profile, nil
}

// Upsert inserts the profile or refreshes the mutable fields on conflict.
func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (user_id, email, name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
    email = EXCLUDED.email,
    name = EXCLUDED.name,
    picture_url = EXCLUDED.picture_url,
    updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(ctx, query,
		profile.UserID,
		profile.Email,
		profile.Name,
		profile.PictureURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)
