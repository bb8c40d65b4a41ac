package drill

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/randutil"
	"github.com/qihuang/bianzheng/internal/screen"
	"github.com/qihuang/bianzheng/internal/spacedrep"
	"github.com/qihuang/bianzheng/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
}

func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) LatestAnswerTime(_ context.Context, _ string) (time.Time, error) {
	return time.Time{}, nil
}
func (m *mockEventRepo) SyndromeAccuracy(_ context.Context, _ string) (float64, error) {
	return 0, nil
}
func (m *mockEventRepo) AccuracyByDisease(_ context.Context) (map[string]store.AccuracyStats, error) {
	return nil, nil
}

// mockSnapshotRepo implements store.SnapshotRepo for testing.
type mockSnapshotRepo struct {
	snapshots []*store.Snapshot
	pruned    int
}

func (m *mockSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	m.snapshots = append(m.snapshots, snap)
	return nil
}
func (m *mockSnapshotRepo) Latest(_ context.Context) (*store.Snapshot, error) {
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	return m.snapshots[len(m.snapshots)-1], nil
}
func (m *mockSnapshotRepo) Prune(_ context.Context, keep int) error {
	m.pruned = keep
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDrillScreen(t *testing.T, count int) (*DrillScreen, *mockEventRepo, *mockSnapshotRepo) {
	t.Helper()
	ds, err := dataset.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded dataset: %v", err)
	}
	eventRepo := &mockEventRepo{}
	snapRepo := &mockSnapshotRepo{}
	s := New(ds, randutil.New(11, 17), eventRepo, snapRepo, count, nil, 10)
	return s, eventRepo, snapRepo
}

// initScreen runs session setup synchronously and feeds the result
// back through Update.
func initScreen(t *testing.T, s *DrillScreen) *DrillScreen {
	t.Helper()
	msg := s.initSession()()
	scr, _ := s.Update(msg)
	ds := scr.(*DrillScreen)
	if ds.errMsg != "" {
		t.Fatalf("init failed: %s", ds.errMsg)
	}
	return ds
}

func TestDrillScreen_Title(t *testing.T) {
	s, _, _ := testDrillScreen(t, 3)
	if s.Title() != "题目练习" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestDrillScreen_InitBuildsQuestions(t *testing.T) {
	s, eventRepo, _ := testDrillScreen(t, 3)
	s = initScreen(t, s)

	if len(s.questions) != 3 {
		t.Errorf("questions = %d, want 3", len(s.questions))
	}
	if s.scheduler == nil {
		t.Error("expected scheduler after init")
	}
	if len(eventRepo.sessionEvents) != 1 || eventRepo.sessionEvents[0].Action != "start" {
		t.Errorf("session events = %+v, want one start", eventRepo.sessionEvents)
	}
	if eventRepo.sessionEvents[0].Mode != "drill" {
		t.Errorf("session mode = %q, want drill", eventRepo.sessionEvents[0].Mode)
	}
}

func TestDrillScreen_View_Loading(t *testing.T) {
	s, _, _ := testDrillScreen(t, 3)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view for loading state")
	}
}

func TestDrillScreen_AnswerSubmit(t *testing.T) {
	s, eventRepo, _ := testDrillScreen(t, 3)
	s = initScreen(t, s)

	// 'a' selects option A and submits in one stroke.
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	ds := scr.(*DrillScreen)

	if !ds.showingFeedback {
		t.Fatal("expected feedback after answer")
	}
	if len(eventRepo.answerEvents) != 1 {
		t.Fatalf("answer events = %d, want 1", len(eventRepo.answerEvents))
	}

	ev := eventRepo.answerEvents[0]
	q := ds.questions[0]
	if ev.SyndromeID != q.SyndromeID || ev.DiseaseID != q.DiseaseID {
		t.Errorf("event ids = %s/%s, want %s/%s", ev.SyndromeID, ev.DiseaseID, q.SyndromeID, q.DiseaseID)
	}
	if ev.Correct != (q.CorrectIndex == 0) {
		t.Errorf("event correctness = %v, correct index %d", ev.Correct, q.CorrectIndex)
	}
	if ev.LearnerAnswer != q.Options[0].Text {
		t.Errorf("learner answer = %q, want option A text", ev.LearnerAnswer)
	}
	if ev.Quality < 0 || ev.Quality > 5 {
		t.Errorf("quality = %d, out of range", ev.Quality)
	}

	// The answer must be tracked by the scheduler.
	if _, ok := ds.scheduler.Get(q.SyndromeID, string(q.Type)); !ok {
		t.Error("scheduler has no state for the answered pair")
	}
	if len(ds.results) != 1 {
		t.Errorf("results = %d, want 1", len(ds.results))
	}
}

func TestDrillScreen_FeedbackAdvances(t *testing.T) {
	s, _, _ := testDrillScreen(t, 3)
	s = initScreen(t, s)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	scr, _ = scr.Update(keyPress(' '))
	ds := scr.(*DrillScreen)

	if ds.showingFeedback {
		t.Error("expected feedback to be dismissed")
	}
	if ds.index != 1 {
		t.Errorf("index = %d, want 1", ds.index)
	}
}

func TestDrillScreen_LastAnswerEndsSession(t *testing.T) {
	s, eventRepo, snapRepo := testDrillScreen(t, 1)
	s = initScreen(t, s)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	scr, cmd := scr.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("expected end command after the last question")
	}
	scr, cmd = scr.Update(cmd())
	ds := scr.(*DrillScreen)

	if !ds.finished {
		t.Error("expected finished session")
	}
	if cmd == nil {
		t.Error("expected navigation command to the summary")
	}

	last := eventRepo.sessionEvents[len(eventRepo.sessionEvents)-1]
	if last.Action != "end" || last.QuestionsServed != 1 {
		t.Errorf("end event = %+v", last)
	}

	if len(snapRepo.snapshots) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snapRepo.snapshots))
	}
	snap := snapRepo.snapshots[0]
	if snap.Data.SpacedRep == nil || len(snap.Data.SpacedRep.Reviews) != 1 {
		t.Errorf("snapshot review state missing: %+v", snap.Data)
	}
	if snapRepo.pruned != 10 {
		t.Errorf("prune keep = %d, want 10", snapRepo.pruned)
	}
}

func TestDrillScreen_QuitConfirm(t *testing.T) {
	s, _, _ := testDrillScreen(t, 3)
	s = initScreen(t, s)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ds := scr.(*DrillScreen)
	if !ds.showingQuitConfirm {
		t.Fatal("expected quit confirmation dialog")
	}

	scr, _ = ds.Update(keyPress('n'))
	ds = scr.(*DrillScreen)
	if ds.showingQuitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}

	scr, _ = ds.Update(specialKey(tea.KeyEscape))
	ds = scr.(*DrillScreen)
	_, cmd := ds.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected end command after quit confirmation")
	}
}

func TestDrillScreen_KeyHints(t *testing.T) {
	s, _, _ := testDrillScreen(t, 3)
	s = initScreen(t, s)
	if len(s.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}

func TestBuildQuestions_DueReviewsFirst(t *testing.T) {
	ds, err := dataset.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded dataset: %v", err)
	}
	r := randutil.New(3, 5)
	engine := question.NewEngine(ds, r)

	// One failed answer three days ago is due now.
	scheduler := spacedrep.NewScheduler(nil)
	past := time.Now().AddDate(0, 0, -3)
	scheduler.Record("D004_S01", string(question.TypeSyndrome), false, 10*time.Second, past)

	questions, err := buildQuestions(engine, scheduler, 4, nil, time.Now())
	if err != nil {
		t.Fatalf("buildQuestions: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("questions = %d, want 4", len(questions))
	}
	if questions[0].SyndromeID != "D004_S01" || questions[0].Type != question.TypeSyndrome {
		t.Errorf("first question = %s/%s, want due review D004_S01/syndrome",
			questions[0].SyndromeID, questions[0].Type)
	}
}

func TestBuildQuestions_TypeFilterSkipsDueReview(t *testing.T) {
	ds, err := dataset.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded dataset: %v", err)
	}
	engine := question.NewEngine(ds, randutil.New(3, 5))

	scheduler := spacedrep.NewScheduler(nil)
	past := time.Now().AddDate(0, 0, -3)
	scheduler.Record("D004_S01", string(question.TypeSyndrome), false, 10*time.Second, past)

	types := []question.Type{question.TypePrescription}
	questions, err := buildQuestions(engine, scheduler, 3, types, time.Now())
	if err != nil {
		t.Fatalf("buildQuestions: %v", err)
	}
	for _, q := range questions {
		if q.Type != question.TypePrescription {
			t.Errorf("question type = %s, want prescription only", q.Type)
		}
	}
}
