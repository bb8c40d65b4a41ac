// Package home is the entry screen: a small menu over a dataset and
// review-state summary.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/randutil"
	"github.com/qihuang/bianzheng/internal/router"
	"github.com/qihuang/bianzheng/internal/screen"
	drillscreen "github.com/qihuang/bianzheng/internal/screens/drill"
	"github.com/qihuang/bianzheng/internal/spacedrep"
	"github.com/qihuang/bianzheng/internal/store"
	"github.com/qihuang/bianzheng/internal/ui/components"
	"github.com/qihuang/bianzheng/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	ds         *dataset.Dataset
	reviewsDue int
	tracked    int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ds *dataset.Dataset, r *randutil.Rand, eventRepo store.EventRepo, snapRepo store.SnapshotRepo, drillCount int, types []question.Type, snapshotKeep int) *HomeScreen {
	// Review counts come from the latest snapshot; a missing or broken
	// snapshot just means zero.
	var reviewsDue, tracked int
	if snapRepo != nil {
		if snap, err := snapRepo.Latest(context.Background()); err == nil {
			var snapData *store.SnapshotData
			if snap != nil {
				snapData = &snap.Data
			}
			scheduler := spacedrep.NewScheduler(snapData)
			reviewsDue = len(scheduler.Due(time.Now()))
			tracked = scheduler.Tracked()
		}
	}

	items := []components.MenuItem{
		{Label: "开始练习", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: drillscreen.New(ds, r, eventRepo, snapRepo, drillCount, types, snapshotKeep),
				}
			}
		}},
		{Label: "退出", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		ds:         ds,
		reviewsDue: reviewsDue,
		tracked:    tracked,
	}
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "主菜单"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("辨 证 论 治"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("中医临床辨证练习"))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("病种 %d    证型 %d    已练 %d    待复习 %d",
		len(s.ds.DiseaseIDs()), len(s.ds.SyndromeIDs()), s.tracked, s.reviewsDue)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(stats))
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	return b.String()
}
