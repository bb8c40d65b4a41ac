// Package summary renders the end-of-session recap: totals, accuracy
// and the per-item review schedule produced by the drill.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/router"
	"github.com/qihuang/bianzheng/internal/screen"
	"github.com/qihuang/bianzheng/internal/ui/layout"
	"github.com/qihuang/bianzheng/internal/ui/theme"
)

// ItemResult is the outcome of one answered question.
type ItemResult struct {
	DiseaseName  string
	SyndromeName string
	Type         question.Type
	Correct      bool
	NextReview   time.Time
}

// Summary aggregates one finished drill session.
type Summary struct {
	TotalQuestions int
	TotalCorrect   int
	Duration       time.Duration
	Results        []ItemResult
}

// Accuracy returns the fraction of correct answers, 0 for an empty session.
func (s *Summary) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalQuestions)
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "练习小结"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "返回"},
		{Key: "Esc", Description: "返回"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("本次练习结束"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("用时 %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("答题 %d        答对 %d        正确率 %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy()*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("复习安排")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, r := range sum.Results {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !r.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}

		line := fmt.Sprintf("  %s %s·%s（%s）    下次复习 %s",
			mark, r.DiseaseName, r.SyndromeName, r.Type.DisplayName(),
			r.NextReview.Format("2006-01-02"))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !r.Correct {
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
