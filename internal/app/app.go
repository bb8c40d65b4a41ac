// Package app wires the Bubble Tea program: root model, router and the
// frame chrome around the active screen.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qihuang/bianzheng/internal/dataset"
	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/randutil"
	"github.com/qihuang/bianzheng/internal/router"
	"github.com/qihuang/bianzheng/internal/screen"
	drillscreen "github.com/qihuang/bianzheng/internal/screens/drill"
	"github.com/qihuang/bianzheng/internal/screens/home"
	"github.com/qihuang/bianzheng/internal/spacedrep"
	"github.com/qihuang/bianzheng/internal/store"
	"github.com/qihuang/bianzheng/internal/ui/layout"
)

// Options carries the dependencies for a TUI run.
type Options struct {
	Dataset      *dataset.Dataset
	Rand         *randutil.Rand
	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo

	DrillCount   int
	Types        []question.Type
	SnapshotKeep int

	// AutoStart skips the home menu and opens a drill session directly.
	AutoStart bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	due    int
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Dataset, opts.Rand, opts.EventRepo, opts.SnapshotRepo,
		opts.DrillCount, opts.Types, opts.SnapshotKeep)
	return AppModel{
		router: router.New(homeScreen),
		opts:   opts,
		due:    dueCount(opts.SnapshotRepo),
	}
}

// dueCount reads the latest snapshot and counts reviews due now.
func dueCount(snapRepo store.SnapshotRepo) int {
	if snapRepo == nil {
		return 0
	}
	snap, err := snapRepo.Latest(context.Background())
	if err != nil {
		return 0
	}
	var snapData *store.SnapshotData
	if snap != nil {
		snapData = &snap.Data
	}
	return len(spacedrep.NewScheduler(snapData).Due(time.Now()))
}

func (m AppModel) Init() tea.Cmd {
	if m.opts.AutoStart {
		opts := m.opts
		return func() tea.Msg {
			return router.PushScreenMsg{
				Screen: drillscreen.New(opts.Dataset, opts.Rand, opts.EventRepo, opts.SnapshotRepo,
					opts.DrillCount, opts.Types, opts.SnapshotKeep),
			}
		}
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.due, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "移动"},
			{Key: "Enter", Description: "确认"},
			{Key: "Ctrl+C", Description: "退出"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
