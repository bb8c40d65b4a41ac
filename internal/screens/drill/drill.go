// Package drill runs an interactive multiple-choice session: questions
// are generated up front (due reviews first), answered one at a time,
// and each answer feeds the spaced-repetition scheduler and the event
// log.
package drill

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/randutil"
	"github.com/qihuang/bianzheng/internal/router"
	"github.com/qihuang/bianzheng/internal/screen"
	"github.com/qihuang/bianzheng/internal/screens/summary"
	"github.com/qihuang/bianzheng/internal/spacedrep"
	"github.com/qihuang/bianzheng/internal/store"
	"github.com/qihuang/bianzheng/internal/ui/components"
	"github.com/qihuang/bianzheng/internal/ui/layout"
	"github.com/qihuang/bianzheng/internal/ui/theme"
)

// DrillScreen implements screen.Screen for the active drill session.
type DrillScreen struct {
	ds           *dataset.Dataset
	engine       *question.Engine
	eventRepo    store.EventRepo
	snapRepo     store.SnapshotRepo
	count        int
	types        []question.Type
	snapshotKeep int

	sessionID string
	scheduler *spacedrep.Scheduler
	questions []*question.Question
	index     int
	mc        components.MultiChoice
	spin      spinner.Model

	startTime         time.Time
	questionStartTime time.Time
	elapsed           time.Duration

	totalCorrect int
	lastCorrect  bool
	lastState    spacedrep.State
	results      []summary.ItemResult

	showingFeedback    bool
	showingQuitConfirm bool
	finished           bool
	errMsg             string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a new DrillScreen with injected dependencies. types
// restricts the archetypes drawn; empty means all six.
func New(ds *dataset.Dataset, r *randutil.Rand, eventRepo store.EventRepo, snapRepo store.SnapshotRepo, count int, types []question.Type, snapshotKeep int) *DrillScreen {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.Secondary)

	return &DrillScreen{
		ds:           ds,
		engine:       question.NewEngine(ds, r),
		eventRepo:    eventRepo,
		snapRepo:     snapRepo,
		count:        count,
		types:        types,
		snapshotKeep: snapshotKeep,
		sessionID:    uuid.NewString(),
		spin:         spin,
	}
}

func (s *DrillScreen) Init() tea.Cmd {
	return tea.Batch(s.initSession(), s.spin.Tick)
}

func (s *DrillScreen) Title() string {
	return "题目练习"
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "结束练习"},
			{Key: "N", Description: "继续答题"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "任意键", Description: "下一题"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-E/1-5", Description: "直接作答"},
		{Key: "↑↓ Enter", Description: "选择并提交"},
		{Key: "Esc", Description: "结束"},
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case drillInitMsg:
		return s.handleInit(msg)

	case timerTickMsg:
		if s.finished || s.questions == nil {
			return s, nil
		}
		s.elapsed = time.Since(s.startTime)
		return s, tickCmd()

	case spinner.TickMsg:
		if s.questions != nil || s.errMsg != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case drillEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

// initSession loads review state from the latest snapshot and generates
// the question list: due reviews first, the rest drawn at random.
func (s *DrillScreen) initSession() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var snapData *store.SnapshotData
		snap, err := s.snapRepo.Latest(ctx)
		if err != nil {
			return drillInitMsg{Err: err}
		}
		if snap != nil {
			snapData = &snap.Data
		}

		scheduler := spacedrep.NewScheduler(snapData)

		questions, err := buildQuestions(s.engine, scheduler, s.count, s.types, time.Now())
		if err != nil {
			return drillInitMsg{Err: err}
		}
		if len(questions) == 0 {
			return drillInitMsg{Err: errors.New("没有可用的题目")}
		}

		_ = s.eventRepo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: s.sessionID,
			Action:    "start",
			Mode:      "drill",
		})

		return drillInitMsg{Questions: questions, Scheduler: scheduler}
	}
}

// buildQuestions serves due reviews before fresh random draws.
func buildQuestions(engine *question.Engine, scheduler *spacedrep.Scheduler, count int, types []question.Type, now time.Time) ([]*question.Question, error) {
	questions := make([]*question.Question, 0, count)

	for _, rev := range scheduler.Due(now) {
		if len(questions) >= count {
			break
		}
		qt, err := question.ParseType(rev.QuestionType)
		if err != nil || !typeAllowed(types, qt) {
			continue
		}
		q, err := engine.Generate(rev.SyndromeID, qt)
		if err != nil {
			// Stale review key, e.g. the dataset changed underneath it.
			continue
		}
		questions = append(questions, q)
	}

	if remaining := count - len(questions); remaining > 0 {
		fresh, err := engine.GenerateRandom(remaining, types)
		if err != nil {
			return nil, err
		}
		questions = append(questions, fresh...)
	}
	return questions, nil
}

func typeAllowed(types []question.Type, qt question.Type) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == qt {
			return true
		}
	}
	return false
}

func (s *DrillScreen) handleInit(msg drillInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.questions = msg.Questions
	s.scheduler = msg.Scheduler
	s.startTime = time.Now()
	s.questionStartTime = s.startTime
	s.mc = newChoice(s.questions[0])
	return s, tickCmd()
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state — any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.questions == nil || s.finished {
		return s, nil
	}

	// Quit confirmation dialog.
	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return drillEndMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			return s, nil
		}
		return s, nil
	}

	// Feedback overlay — any key advances.
	if s.showingFeedback {
		return s.advance()
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		return s.submitAnswer()
	}
	return s, cmd
}

// submitAnswer scores the choice, feeds the scheduler and logs the event.
func (s *DrillScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	q := s.questions[s.index]
	correct := s.mc.IsCorrect()
	duration := time.Since(s.questionStartTime)
	now := time.Now()

	s.lastCorrect = correct
	s.lastState = s.scheduler.Record(q.SyndromeID, string(q.Type), correct, duration, now)
	if correct {
		s.totalCorrect++
	}

	var learnerAnswer string
	if s.mc.ChosenIndex >= 0 && s.mc.ChosenIndex < len(q.Options) {
		learnerAnswer = q.Options[s.mc.ChosenIndex].Text
	}

	_ = s.eventRepo.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:     s.sessionID,
		SyndromeID:    q.SyndromeID,
		DiseaseID:     q.DiseaseID,
		QuestionType:  string(q.Type),
		QuestionText:  q.Stem,
		CorrectAnswer: q.Explanation.CorrectAnswer,
		LearnerAnswer: learnerAnswer,
		Correct:       correct,
		TimeMs:        int(duration.Milliseconds()),
		Quality:       spacedrep.Quality(correct, duration),
	})

	s.results = append(s.results, summary.ItemResult{
		DiseaseName:  s.diseaseName(q.DiseaseID),
		SyndromeName: s.syndromeName(q.SyndromeID),
		Type:         q.Type,
		Correct:      correct,
		NextReview:   s.lastState.NextReview,
	})

	s.showingFeedback = true
	return s, nil
}

// advance moves to the next question, or ends the session after the last.
func (s *DrillScreen) advance() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.index++
	if s.index >= len(s.questions) {
		return s, func() tea.Msg { return drillEndMsg{} }
	}
	s.mc = newChoice(s.questions[s.index])
	s.questionStartTime = time.Now()
	return s, nil
}

// handleSessionEnd persists the session event and the review snapshot,
// then swaps this screen for the summary.
func (s *DrillScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	s.finished = true
	s.elapsed = time.Since(s.startTime)

	ctx := context.Background()
	_ = s.eventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.sessionID,
		Action:          "end",
		Mode:            "drill",
		QuestionsServed: len(s.results),
		CorrectAnswers:  s.totalCorrect,
		DurationSecs:    int(s.elapsed.Seconds()),
	})
	s.saveSnapshot(ctx)

	sum := &summary.Summary{
		TotalQuestions: len(s.results),
		TotalCorrect:   s.totalCorrect,
		Duration:       s.elapsed,
		Results:        s.results,
	}

	return s, tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return router.PushScreenMsg{Screen: summary.New(sum)} },
	)
}

// saveSnapshot persists the scheduler state and prunes old snapshots.
func (s *DrillScreen) saveSnapshot(ctx context.Context) {
	if s.scheduler == nil {
		return
	}
	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version:   store.CurrentSnapshotVersion,
			SpacedRep: s.scheduler.SnapshotData(),
		},
	}
	_ = s.snapRepo.Save(ctx, snap)
	_ = s.snapRepo.Prune(ctx, s.snapshotKeep)
}

func (s *DrillScreen) diseaseName(id string) string {
	if d, err := s.ds.Disease(id); err == nil {
		return d.Name
	}
	return id
}

func (s *DrillScreen) syndromeName(id string) string {
	if syn, err := s.ds.Syndrome(id); err == nil {
		return syn.Name
	}
	return id
}

func newChoice(q *question.Question) components.MultiChoice {
	options := make([]string, len(q.Options))
	for i, o := range q.Options {
		options[i] = o.Text
	}
	return components.NewMultiChoice(q.Stem, options, q.CorrectIndex)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
