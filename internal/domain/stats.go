package domain

import (
	"math"
	"time"
)

// SessionStats holds the running score of one study session. Stats are
// ephemeral: they are reset when the next session starts and are never
// persisted.
type SessionStats struct {
	Total     int       `json:"total"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	WordCount int       `json:"word_count"`
	StartTime time.Time `json:"start_time"`
}

// NewSessionStats returns stats for a session over count items.
func NewSessionStats(count int) SessionStats {
	return SessionStats{
		Total:     count,
		WordCount: count,
		StartTime: time.Now().UTC(),
	}
}

// Accuracy returns the session accuracy as a rounded percentage.
// A session with no items has an accuracy of 0.
func (s SessionStats) Accuracy() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}
