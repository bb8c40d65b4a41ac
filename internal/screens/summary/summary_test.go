package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/router"
)

func testSummary() *Summary {
	next := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return &Summary{
		TotalQuestions: 4,
		TotalCorrect:   3,
		Duration:       2*time.Minute + 30*time.Second,
		Results: []ItemResult{
			{DiseaseName: "感冒", SyndromeName: "风寒束表证", Type: question.TypeSyndrome, Correct: true, NextReview: next},
			{DiseaseName: "胃痛", SyndromeName: "寒邪客胃证", Type: question.TypePrescription, Correct: false, NextReview: next},
		},
	}
}

func TestAccuracy(t *testing.T) {
	if got := testSummary().Accuracy(); got != 0.75 {
		t.Errorf("Accuracy = %v, want 0.75", got)
	}
	empty := &Summary{}
	if got := empty.Accuracy(); got != 0 {
		t.Errorf("empty Accuracy = %v, want 0", got)
	}
}

func TestView(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	for _, want := range []string{"风寒束表证", "2026-09-01", "2:30"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewNilSummary(t *testing.T) {
	s := New(nil)
	if got := s.View(80, 24); got != "" {
		t.Errorf("expected empty view for nil summary, got %q", got)
	}
}

func TestEnterPopsScreen(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
