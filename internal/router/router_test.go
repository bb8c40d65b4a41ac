package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/qihuang/bianzheng/internal/screen"
)

// stubScreen is a minimal screen for router tests.
type stubScreen struct {
	name    string
	inited  bool
	lastMsg tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.lastMsg = msg
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestPushAndPop(t *testing.T) {
	first := &stubScreen{name: "first"}
	r := New(first)

	if r.Depth() != 1 {
		t.Fatalf("initial depth = %d, want 1", r.Depth())
	}
	if r.Active() != first {
		t.Fatal("active screen is not the initial screen")
	}

	second := &stubScreen{name: "second"}
	r.Push(second)

	if r.Depth() != 2 {
		t.Errorf("depth after push = %d, want 2", r.Depth())
	}
	if r.Active() != second {
		t.Error("active screen is not the pushed screen")
	}
	if !second.inited {
		t.Error("pushed screen was not initialized")
	}

	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth after pop = %d, want 1", r.Depth())
	}
	if r.Active() != first {
		t.Error("active screen after pop is not the initial screen")
	}
}

func TestPopNeverEmptiesStack(t *testing.T) {
	r := New(&stubScreen{name: "only"})
	r.Pop()
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if r.Active() == nil {
		t.Fatal("active screen is nil")
	}
}

func TestUpdateHandlesNavigationMessages(t *testing.T) {
	r := New(&stubScreen{name: "first"})

	second := &stubScreen{name: "second"}
	r.Update(PushScreenMsg{Screen: second})
	if r.Active() != second {
		t.Fatal("PushScreenMsg did not push the screen")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("depth after PopScreenMsg = %d, want 1", r.Depth())
	}
}

func TestUpdateForwardsToActiveScreen(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}
	r := New(first)
	r.Push(second)

	msg := tea.WindowSizeMsg{Width: 100, Height: 40}
	r.Update(msg)

	if second.lastMsg != msg {
		t.Error("message was not forwarded to the active screen")
	}
	if first.lastMsg != nil {
		t.Error("message leaked to an inactive screen")
	}
}

func TestViewRendersActiveScreen(t *testing.T) {
	r := New(&stubScreen{name: "first"})
	r.Push(&stubScreen{name: "second"})

	if got := r.View(80, 24); got != "second" {
		t.Errorf("View() = %q, want %q", got, "second")
	}
}
