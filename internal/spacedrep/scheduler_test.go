package spacedrep

import (
	"testing"
	"time"

	"github.com/qihuang/bianzheng/internal/store"
)

func TestSchedulerFirstExposure(t *testing.T) {
	s := NewScheduler(nil)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	st := s.Record("D001_S01", "syndrome", true, 10*time.Second, now)
	if st.Repetition != 1 || st.IntervalDays != 1 {
		t.Errorf("first answer state = %+v", st)
	}
	if st.Easiness != 2.6 {
		t.Errorf("easiness = %v, want 2.6", st.Easiness)
	}

	got, ok := s.Get("D001_S01", "syndrome")
	if !ok || got != st {
		t.Errorf("Get returned %+v, %v", got, ok)
	}
	if _, ok := s.Get("D001_S01", "treatment"); ok {
		t.Error("untouched pair has state")
	}
}

func TestSchedulerPairsAreIndependent(t *testing.T) {
	s := NewScheduler(nil)
	now := time.Now()

	s.Record("D001_S01", "syndrome", true, 5*time.Second, now)
	s.Record("D001_S01", "syndrome", true, 5*time.Second, now)
	s.Record("D001_S01", "treatment", false, 5*time.Second, now)

	syn, _ := s.Get("D001_S01", "syndrome")
	tr, _ := s.Get("D001_S01", "treatment")
	if syn.Repetition != 2 {
		t.Errorf("syndrome pair repetition = %d, want 2", syn.Repetition)
	}
	if tr.Repetition != 0 {
		t.Errorf("treatment pair repetition = %d, want 0", tr.Repetition)
	}
	if s.Tracked() != 2 {
		t.Errorf("Tracked = %d, want 2", s.Tracked())
	}
}

func TestSchedulerDueOrdering(t *testing.T) {
	s := NewScheduler(nil)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// Answered 10 days ago with interval 1: long overdue.
	s.Record("D001_S01", "syndrome", true, 5*time.Second, now.AddDate(0, 0, -10))
	// Answered 2 days ago with interval 1: mildly overdue.
	s.Record("D002_S01", "syndrome", true, 5*time.Second, now.AddDate(0, 0, -2))
	// Answered just now: due tomorrow, not today.
	s.Record("D003_S01", "syndrome", true, 5*time.Second, now)

	due := s.Due(now)
	if len(due) != 2 {
		t.Fatalf("got %d due reviews, want 2", len(due))
	}
	if due[0].SyndromeID != "D001_S01" || due[1].SyndromeID != "D002_S01" {
		t.Errorf("due order = %s, %s", due[0].SyndromeID, due[1].SyndromeID)
	}
}

func TestSchedulerSnapshotRoundTrip(t *testing.T) {
	s := NewScheduler(nil)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.Record("D001_S01", "syndrome", true, 10*time.Second, now)
	s.Record("D002_S01", "prescription", false, 90*time.Second, now)

	snap := &store.SnapshotData{SpacedRep: s.SnapshotData()}
	restored := NewScheduler(snap)

	if restored.Tracked() != 2 {
		t.Fatalf("restored %d pairs, want 2", restored.Tracked())
	}
	for _, pair := range [][2]string{{"D001_S01", "syndrome"}, {"D002_S01", "prescription"}} {
		want, _ := s.Get(pair[0], pair[1])
		got, ok := restored.Get(pair[0], pair[1])
		if !ok || got != want {
			t.Errorf("%s|%s restored as %+v, want %+v", pair[0], pair[1], got, want)
		}
	}
}

func TestSchedulerSkipsCorruptSnapshotEntries(t *testing.T) {
	snap := &store.SnapshotData{
		SpacedRep: &store.SpacedRepSnapshotData{
			Reviews: map[string]*store.ReviewStateData{
				"bad|entry": {
					SyndromeID:   "bad",
					QuestionType: "entry",
					NextReview:   "not-a-timestamp",
					LastReview:   "also-bad",
				},
			},
		},
	}
	s := NewScheduler(snap)
	if s.Tracked() != 0 {
		t.Errorf("corrupt entry was loaded, Tracked = %d", s.Tracked())
	}
}
