package stats

import "time"

// StatsResponse is the outward-facing representation of user stats.
type StatsResponse struct {
	XP                 int        `json:"xp"`
	CurrentStreak      int        `json:"currentStreak"`
	LongestStreak      int        `json:"longestStreak"`
	DocumentsProcessed int        `json:"documentsProcessed"`
	QuizzesCompleted   int        `json:"quizzesCompleted"`
	LastActivityAt     *time.Time `json:"lastActivityAt,omitempty"`
}

func toResponse(stats UserStats) StatsResponse {
	return StatsResponse{
		XP:                 stats.XP,
		CurrentStreak:      stats.CurrentStreak,
		LongestStreak:      stats.LongestStreak,
		DocumentsProcessed: stats.DocumentsProcessed,
		QuizzesCompleted:   stats.QuizzesCompleted,
		LastActivityAt:     stats.LastActivityAt,
	}
}
