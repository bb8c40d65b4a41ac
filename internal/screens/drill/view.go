package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/qihuang/bianzheng/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.questions == nil {
		return renderLoading(width, s.spin.View())
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question display.
func (s *DrillScreen) renderQuestionView(width int) string {
	q := s.questions[s.index]

	var b strings.Builder

	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  第 %d/%d 题 · %s", s.index+1, len(s.questions), q.Type.DisplayName()))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d:%02d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.totalCorrect,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"),
			mins, secs,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	choice := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Render(s.mc.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choice))

	return b.String()
}

// renderFeedback renders the post-answer explanation overlay.
func (s *DrillScreen) renderFeedback(width int) string {
	q := s.questions[s.index]
	exp := q.Explanation

	var b strings.Builder
	b.WriteString("\n")

	if s.lastCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("回答正确"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("回答错误"))
	}
	b.WriteString("\n\n")

	bodyWidth := min(width-8, 76)
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text)

	var lines []string
	lines = append(lines, label.Render("正确答案：")+body.Render(exp.CorrectAnswer))
	lines = append(lines, label.Render("证机概要：")+body.Render(exp.Pathogenesis))
	lines = append(lines, label.Render("治　　法：")+body.Render(exp.TreatmentMethod))
	rx := exp.Prescription
	if exp.AltPrescription != "" {
		rx += "，或" + exp.AltPrescription
	}
	lines = append(lines, label.Render("方　　剂：")+body.Render(rx))
	if len(exp.KeySymptomAnalysis) > 0 {
		lines = append(lines, label.Render("辨证要点：")+body.Render(strings.Join(exp.KeySymptomAnalysis, "；")))
	}

	block := lipgloss.NewStyle().
		Width(bodyWidth).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("下次复习：%s（间隔 %d 天）",
			s.lastState.NextReview.Format("2006-01-02"), s.lastState.IntervalDays)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("按任意键继续……"))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("提前结束练习？"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("已答题目的复习进度会保存。"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] 结束练习"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] 继续答题"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int, spin string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + spin + " 正在准备题目……")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  出错了：%s\n\n  按任意键返回。", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
