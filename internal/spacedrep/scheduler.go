package spacedrep

import (
	"sort"
	"time"

	"github.com/qihuang/bianzheng/internal/store"
)

// Review tracks one (syndrome, question-type) pair.
type Review struct {
	SyndromeID   string
	QuestionType string
	State        State
	LastReview   time.Time
}

// Key returns the pair's review key.
func (r *Review) Key() string {
	return r.SyndromeID + "|" + r.QuestionType
}

// Scheduler holds the in-memory review map, hydrated from a snapshot at
// startup and exported back for persistence at session end.
type Scheduler struct {
	reviews map[string]*Review
}

// NewScheduler creates a scheduler, loading review state from the
// snapshot when one exists.
func NewScheduler(snap *store.SnapshotData) *Scheduler {
	s := &Scheduler{reviews: make(map[string]*Review)}
	if snap == nil || snap.SpacedRep == nil {
		return s
	}
	for key, rd := range snap.SpacedRep.Reviews {
		nextReview, err := time.Parse(time.RFC3339, rd.NextReview)
		if err != nil {
			continue
		}
		lastReview, err := time.Parse(time.RFC3339, rd.LastReview)
		if err != nil {
			continue
		}
		s.reviews[key] = &Review{
			SyndromeID:   rd.SyndromeID,
			QuestionType: rd.QuestionType,
			State: State{
				Easiness:     rd.Easiness,
				IntervalDays: rd.IntervalDays,
				Repetition:   rd.Repetition,
				NextReview:   nextReview,
			},
			LastReview: lastReview,
		}
	}
	return s
}

// Record applies one answer to the pair's schedule, initializing it on
// first exposure, and returns the new state.
func (s *Scheduler) Record(syndromeID, questionType string, correct bool, duration time.Duration, now time.Time) State {
	key := syndromeID + "|" + questionType
	rv := s.reviews[key]
	if rv == nil {
		rv = &Review{SyndromeID: syndromeID, QuestionType: questionType, State: NewState(now)}
		s.reviews[key] = rv
	}

	rv.State = NextState(rv.State, Quality(correct, duration), now)
	rv.LastReview = now
	return rv.State
}

// Due returns the reviews due at now, most overdue first. Ties break on
// key for stable ordering.
func (s *Scheduler) Due(now time.Time) []*Review {
	var due []*Review
	for _, rv := range s.reviews {
		if !rv.State.NextReview.After(now) {
			due = append(due, rv)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].State.NextReview.Equal(due[j].State.NextReview) {
			return due[i].State.NextReview.Before(due[j].State.NextReview)
		}
		return due[i].Key() < due[j].Key()
	})
	return due
}

// Get returns the tracked state for a pair, if any.
func (s *Scheduler) Get(syndromeID, questionType string) (State, bool) {
	rv, ok := s.reviews[syndromeID+"|"+questionType]
	if !ok {
		return State{}, false
	}
	return rv.State, true
}

// Tracked returns the number of pairs with review state.
func (s *Scheduler) Tracked() int {
	return len(s.reviews)
}

// SnapshotData exports the review map for persistence.
func (s *Scheduler) SnapshotData() *store.SpacedRepSnapshotData {
	data := &store.SpacedRepSnapshotData{
		Reviews: make(map[string]*store.ReviewStateData, len(s.reviews)),
	}
	for key, rv := range s.reviews {
		data.Reviews[key] = &store.ReviewStateData{
			SyndromeID:   rv.SyndromeID,
			QuestionType: rv.QuestionType,
			Easiness:     rv.State.Easiness,
			IntervalDays: rv.State.IntervalDays,
			Repetition:   rv.State.Repetition,
			NextReview:   rv.State.NextReview.Format(time.RFC3339),
			LastReview:   rv.LastReview.Format(time.RFC3339),
		}
	}
	return data
}
