package stats

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the stats row for a user.
func (r *PGRepo) Get(ctx context.Context, userID string) (UserStats, error) {
	const query = `
SELECT user_id, xp, current_streak, longest_streak, documents_processed, quizzes_completed, last_activity_at, updated_at
FROM user_stats
WHERE user_id = $1
LIMIT 1`
	var stats UserStats
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID,
		&stats.XP,
		&stats.CurrentStreak,
		&stats.LongestStreak,
		&stats.DocumentsProcessed,
		&stats.QuizzesCompleted,
		&stats.LastActivityAt,
		&stats.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserStats{}, ErrNotFound
		}
		return UserStats{}, err
	}
	return stats, nil
}

// Upsert stores the stats row, inserting on first activity.
func (r *PGRepo) Upsert(ctx context.Context, stats UserStats) error {
	const query = `
INSERT INTO user_stats (user_id, xp, current_streak, longest_streak, documents_processed, quizzes_completed, last_activity_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
    xp = EXCLUDED.xp,
    current_streak = EXCLUDED.current_streak,
    longest_streak = EXCLUDED.longest_streak,
    documents_processed = EXCLUDED.documents_processed,
    quizzes_completed = EXCLUDED.quizzes_completed,
    last_activity_at = EXCLUDED.last_activity_at,
    updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(ctx, query,
		stats.UserID,
		stats.XP,
		stats.CurrentStreak,
		stats.LongestStreak,
		stats.DocumentsProcessed,
		stats.QuizzesCompleted,
		stats.LastActivityAt,
		stats.UpdatedAt,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)
