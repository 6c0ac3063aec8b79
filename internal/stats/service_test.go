package stats

import (
	"context"
	"testing"
	"time"
)

func newTestService(t *testing.T, now time.Time) (*Service, *time.Time) {
	t.Helper()
	current := now
	svc := NewService(NewMemoryRepo())
	svc.now = func() time.Time { return current }
	return svc, &current
}

func TestGetReturnsZeroStatsForNewUser(t *testing.T) {
	svc, _ := newTestService(t, time.Now().UTC())

	stats, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stats.XP != 0 || stats.CurrentStreak != 0 || stats.LastActivityAt != nil {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}

func TestRecordQuizCompletedAwardsXP(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	svc.RecordQuizCompleted(ctx, "user-1", 3, 5)

	stats, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stats.XP != 3*XPPerCorrectAnswer {
		t.Fatalf("expected %d XP, got %d", 3*XPPerCorrectAnswer, stats.XP)
	}
	if stats.QuizzesCompleted != 1 {
		t.Fatalf("expected 1 quiz completed, got %d", stats.QuizzesCompleted)
	}
	if stats.CurrentStreak != 1 {
		t.Fatalf("expected streak 1, got %d", stats.CurrentStreak)
	}
}

func TestRecordDocumentProcessedAwardsXP(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	svc.RecordDocumentProcessed(ctx, "user-1")

	stats, _ := svc.Get(ctx, "user-1")
	if stats.XP != XPPerDocumentProcessed {
		t.Fatalf("expected %d XP, got %d", XPPerDocumentProcessed, stats.XP)
	}
	if stats.DocumentsProcessed != 1 {
		t.Fatalf("expected 1 document processed, got %d", stats.DocumentsProcessed)
	}
}

func TestStreakSameDayUnchanged(t *testing.T) {
	svc, now := newTestService(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	svc.RecordQuizCompleted(ctx, "user-1", 5, 5)
	*now = now.Add(6 * time.Hour)
	svc.RecordQuizCompleted(ctx, "user-1", 5, 5)

	stats, _ := svc.Get(ctx, "user-1")
	if stats.CurrentStreak != 1 {
		t.Fatalf("expected streak 1 for same-day activity, got %d", stats.CurrentStreak)
	}
	if stats.QuizzesCompleted != 2 {
		t.Fatalf("expected 2 quizzes completed, got %d", stats.QuizzesCompleted)
	}
}

func TestStreakConsecutiveDaysExtend(t *testing.T) {
	svc, now := newTestService(t, time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC))
	ctx := context.Background()

	svc.RecordQuizCompleted(ctx, "user-1", 5, 5)
	*now = time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)
	svc.RecordQuizCompleted(ctx, "user-1", 5, 5)
	*now = time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	svc.RecordQuizCompleted(ctx, "user-1", 5, 5)

	stats, _ := svc.Get(ctx, "user-1")
	if stats.CurrentStreak != 3 {
		t.Fatalf("expected streak 3, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", stats.LongestStreak)
	}
}

func TestStreakResetsAfterGap(t *testing.T) {
	svc, now := newTestService(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	svc.RecordQuizCompleted(ctx, "user-1", 5, 5)
	*now = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	svc.RecordQuizCompleted(ctx, "user-1", 5, 5)
	*now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.RecordQuizCompleted(ctx, "user-1", 5, 5)

	stats, _ := svc.Get(ctx, "user-1")
	if stats.CurrentStreak != 1 {
		t.Fatalf("expected streak reset to 1, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 2 {
		t.Fatalf("expected longest streak 2, got %d", stats.LongestStreak)
	}
}
