package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	second, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if second != first+1 {
		t.Errorf("sequence not monotonic: %d then %d", first, second)
	}
}

func answerData(sessionID, syndromeID, diseaseID string, correct bool) AnswerEventData {
	return AnswerEventData{
		SessionID:     sessionID,
		SyndromeID:    syndromeID,
		DiseaseID:     diseaseID,
		QuestionType:  "syndrome",
		QuestionText:  "最可能的证型是？",
		CorrectAnswer: "风寒束表证",
		LearnerAnswer: "风寒束表证",
		Correct:       correct,
		TimeMs:        8000,
		Quality:       5,
	}
}

func TestAppendAndQueryAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, correct := range []bool{true, true, false} {
		if err := repo.AppendAnswerEvent(ctx, answerData("sess-1", "D001_S01", "D001", correct)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := repo.AppendAnswerEvent(ctx, answerData("sess-1", "D002_S01", "D002", false)); err != nil {
		t.Fatalf("append: %v", err)
	}

	acc, err := repo.SyndromeAccuracy(ctx, "D001_S01")
	if err != nil {
		t.Fatalf("accuracy: %v", err)
	}
	if want := 2.0 / 3.0; acc != want {
		t.Errorf("accuracy = %v, want %v", acc, want)
	}

	acc, err = repo.SyndromeAccuracy(ctx, "D009_S01")
	if err != nil {
		t.Fatalf("accuracy (unanswered): %v", err)
	}
	if acc != 0 {
		t.Errorf("unanswered accuracy = %v, want 0", acc)
	}

	byDisease, err := repo.AccuracyByDisease(ctx)
	if err != nil {
		t.Fatalf("by disease: %v", err)
	}
	if got := byDisease["D001"]; got.Total != 3 || got.Correct != 2 {
		t.Errorf("D001 stats = %+v", got)
	}
	if got := byDisease["D002"]; got.Total != 1 || got.Correct != 0 {
		t.Errorf("D002 stats = %+v", got)
	}
}

func TestLatestAnswerTime(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	got, err := repo.LatestAnswerTime(ctx, "D001_S01")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if !got.IsZero() {
		t.Errorf("expected zero time for unanswered syndrome, got %v", got)
	}

	before := time.Now().Add(-time.Second)
	if err := repo.AppendAnswerEvent(ctx, answerData("sess-1", "D001_S01", "D001", true)); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err = repo.LatestAnswerTime(ctx, "D001_S01")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.Before(before) {
		t.Errorf("latest answer time %v predates the append", got)
	}
}

func TestAppendSessionEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "sess-1",
		Action:    "start",
		Mode:      "drill",
	})
	if err != nil {
		t.Fatalf("append start: %v", err)
	}
	err = repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:       "sess-1",
		Action:          "end",
		Mode:            "drill",
		QuestionsServed: 10,
		CorrectAnswers:  7,
		DurationSecs:    300,
	})
	if err != nil {
		t.Fatalf("append end: %v", err)
	}

	count, err := s.Client().SessionEvent.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("session events = %d, want 2", count)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: CurrentSnapshotVersion,
			SpacedRep: &SpacedRepSnapshotData{
				Reviews: map[string]*ReviewStateData{
					"D001_S01|syndrome": {
						SyndromeID:   "D001_S01",
						QuestionType: "syndrome",
						Easiness:     2.6,
						IntervalDays: 6,
						Repetition:   2,
						NextReview:   now.AddDate(0, 0, 6).Format(time.RFC3339),
						LastReview:   now.Format(time.RFC3339),
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	rd := snap.Data.SpacedRep.Reviews["D001_S01|syndrome"]
	if rd == nil || rd.Easiness != 2.6 || rd.Repetition != 2 {
		t.Errorf("review state round-trip failed: %+v", rd)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: CurrentSnapshotVersion},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: CurrentSnapshotVersion},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}
