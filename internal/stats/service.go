package stats

import (
	"context"
	"errors"
	"time"

	"learnanything-backend/internal/shared/telemetry"
)

// Service maintains per-user study stats. Recording methods are
// best-effort: a stats failure never fails the activity that triggered it,
// it is only logged.
type Service struct {
	Repo Repo

	// now is swappable in tests for streak-boundary cases.
	now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Get returns the user's stats, or a zeroed row if none recorded yet.
func (s *Service) Get(ctx context.Context, userID string) (UserStats, error) {
	stats, err := s.Repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UserStats{UserID: userID}, nil
		}
		return UserStats{}, err
	}
	return stats, nil
}

// RecordQuizCompleted awards XP for correct answers and advances the streak.
func (s *Service) RecordQuizCompleted(ctx context.Context, userID string, score, totalQuestions int) {
	s.record(ctx, userID, func(stats *UserStats) {
		stats.QuizzesCompleted++
		stats.XP += score * XPPerCorrectAnswer
	})
}

// RecordDocumentProcessed awards XP for a successful pipeline run and
// advances the streak.
func (s *Service) RecordDocumentProcessed(ctx context.Context, userID string) {
	s.record(ctx, userID, func(stats *UserStats) {
		stats.DocumentsProcessed++
		stats.XP += XPPerDocumentProcessed
	})
}

func (s *Service) record(ctx context.Context, userID string, apply func(*UserStats)) {
	stats, err := s.Repo.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		telemetry.Error("stats.record", map[string]any{"error": err.Error()})
		return
	}
	if errors.Is(err, ErrNotFound) {
		stats = UserStats{UserID: userID}
	}

	now := s.now().UTC()
	stats.CurrentStreak = nextStreak(stats.CurrentStreak, stats.LastActivityAt, now)
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastActivityAt = &now
	stats.UpdatedAt = now

	apply(&stats)

	if err := s.Repo.Upsert(ctx, stats); err != nil {
		telemetry.Error("stats.record", map[string]any{"error": err.Error()})
	}
}

// nextStreak extends the streak when the previous activity was yesterday,
// keeps it for same-day activity, and resets to 1 after a gap.
func nextStreak(current int, last *time.Time, now time.Time) int {
	if last == nil || current == 0 {
		return 1
	}
	today := dateOf(now)
	lastDay := dateOf(last.UTC())
	switch {
	case lastDay.Equal(today):
		return current
	case lastDay.AddDate(0, 0, 1).Equal(today):
		return current + 1
	default:
		return 1
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
