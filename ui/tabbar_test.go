package ui

import (
	"fmt"
	"testing"

	"void/workspace"

	"github.com/gdamore/tcell/v2"
)

func openTabs(n int, format string) []workspace.Entity {
	var open []workspace.Entity
	for i := 0; i < n; i++ {
		open = append(open, workspace.Entity{
			ID:   workspace.ID(fmt.Sprintf("e%d", i)),
			Name: fmt.Sprintf(format, i),
			Open: true,
		})
	}
	return open
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	return screen
}

func TestTabBarRenderKeepsActiveTabVisible(t *testing.T) {
	open := openTabs(14, "file-%d.txt")
	open[len(open)-1].Active = true
	tb := NewTabBar(nil)
	tb.SetTabs(open)

	screen := newScreen(t)
	tb.Render(screen, 0, 0, 32, 1)

	if tb.scrollOff <= 0 {
		t.Fatalf("expected tab bar to scroll for active off-screen tab, got scrollOff=%d", tb.scrollOff)
	}
	if tb.Active != 13 || tb.Active < tb.scrollOff {
		t.Fatalf("active tab should stay visible: active=%d scrollOff=%d", tb.Active, tb.scrollOff)
	}
}

func TestTabBarWheelScrollsHiddenTabs(t *testing.T) {
	open := openTabs(10, "tab-%d.txt")
	open[0].Active = true
	tb := NewTabBar(nil)
	tb.SetTabs(open)

	screen := newScreen(t)
	tb.Render(screen, 0, 0, 28, 1)
	if tb.scrollOff != 0 {
		t.Fatalf("expected initial scrollOff=0, got %d", tb.scrollOff)
	}

	tb.HandleMouse(tcell.NewEventMouse(5, 0, tcell.WheelDown, tcell.ModNone))
	if tb.scrollOff == 0 {
		t.Fatalf("expected wheel down to increase scrollOff")
	}

	tb.HandleMouse(tcell.NewEventMouse(5, 0, tcell.WheelUp, tcell.ModNone))
	if tb.scrollOff != 0 {
		t.Fatalf("expected wheel up to restore scrollOff=0, got %d", tb.scrollOff)
	}
}

func TestTabBarClickSwitchesAndCloses(t *testing.T) {
	open := []workspace.Entity{
		{ID: "a", Name: "a.js", Open: true, Active: true},
		{ID: "b", Name: "b.js", Open: true},
	}
	tb := NewTabBar(nil)
	tb.SetTabs(open)
	var switched, closed workspace.ID
	tb.OnSwitch = func(id workspace.ID) { switched = id }
	tb.OnClose = func(id workspace.ID) { closed = id }

	screen := newScreen(t)
	tb.Render(screen, 0, 0, 40, 1)

	click := func(x int) {
		tb.HandleMouse(tcell.NewEventMouse(x, 0, tcell.Button1, tcell.ModNone))
		tb.HandleMouse(tcell.NewEventMouse(x, 0, tcell.ButtonNone, tcell.ModNone))
	}

	// " a.js x │" is nine cells wide, so the second tab starts at 9
	click(11)
	if switched != "b" {
		t.Fatalf("expected switch to b, got %q", switched)
	}
	click(6)
	if closed != "a" {
		t.Fatalf("expected close of a, got %q", closed)
	}
}

func TestTabBarMarksModifiedTabs(t *testing.T) {
	tb := NewTabBar(nil)
	tb.SetTabs([]workspace.Entity{{ID: "a", Name: "a.js", Open: true, Active: true, Modified: true}})

	screen := newScreen(t)
	tb.Render(screen, 0, 0, 20, 1)
	if r, _, _, _ := screen.GetContent(1, 0); r != '*' {
		t.Fatalf("expected modified marker, got %q", r)
	}
}

func TestTabBarEmpty(t *testing.T) {
	tb := NewTabBar(nil)
	tb.SetTabs(nil)
	if tb.Active != -1 {
		t.Fatalf("expected no active tab, got %d", tb.Active)
	}
	screen := newScreen(t)
	tb.Render(screen, 0, 0, 20, 1)
}
