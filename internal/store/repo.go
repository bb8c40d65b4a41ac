package store

import (
	"context"
	"time"
)

// CurrentSnapshotVersion is bumped when SnapshotData changes shape.
const CurrentSnapshotVersion = 1

// ReviewStateData is the serialized form of one SM-2 review record.
type ReviewStateData struct {
	SyndromeID   string  `json:"syndrome_id"`
	QuestionType string  `json:"question_type"`
	Easiness     float64 `json:"easiness"`
	IntervalDays int     `json:"interval_days"`
	Repetition   int     `json:"repetition"`
	NextReview   string  `json:"next_review"`
	LastReview   string  `json:"last_review"`
}

// SpacedRepSnapshotData holds all review records keyed by
// "syndrome_id|question_type".
type SpacedRepSnapshotData struct {
	Reviews map[string]*ReviewStateData `json:"reviews"`
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version   int                    `json:"version"`
	SpacedRep *SpacedRepSnapshotData `json:"spaced_rep,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AnswerEventData captures a single answered question.
type AnswerEventData struct {
	SessionID     string
	SyndromeID    string
	DiseaseID     string
	QuestionType  string
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int
	Quality       int
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	Mode            string // "drill" or "case"
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AccuracyStats is an answered/correct tally.
type AccuracyStats struct {
	Total   int
	Correct int
}

// Accuracy returns the correct fraction, zero when nothing was answered.
func (a AccuracyStats) Accuracy() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records one answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// LatestAnswerTime returns when the syndrome was last answered,
	// or the zero time if never.
	LatestAnswerTime(ctx context.Context, syndromeID string) (time.Time, error)

	// SyndromeAccuracy returns the all-time correct fraction for a syndrome.
	SyndromeAccuracy(ctx context.Context, syndromeID string) (float64, error)

	// AccuracyByDisease tallies answers per disease across all history.
	AccuracyByDisease(ctx context.Context) (map[string]AccuracyStats, error)
}
