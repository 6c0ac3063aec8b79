package stats

import "time"

// XP awards per activity.
const (
	XPPerCorrectAnswer     = 10
	XPPerDocumentProcessed = 20
)

// UserStats is the per-user aggregate of study activity. Streaks count
// consecutive UTC days with at least one recorded activity.
type UserStats struct {
	UserID             string
	XP                 int
	CurrentStreak      int
	LongestStreak      int
	DocumentsProcessed int
	QuizzesCompleted   int
	LastActivityAt     *time.Time
	UpdatedAt          time.Time
}
