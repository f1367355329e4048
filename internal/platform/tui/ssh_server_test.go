package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/core"
	"github.com/vovakirdan/lightemup/internal/registry"
)

func sessionUpdate(m SessionModel, msg tea.Msg) SessionModel {
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	services := registry.Services{Config: config.DefaultLightEmUpConfig()}
	cfg := core.DefaultConfig()
	cfg.Player = "ann"
	cfg.Seed = 1

	m := NewSessionModel(store, services, cfg)

	m = sessionUpdate(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScores {
		t.Fatal("Tab should open the scoreboard")
	}
	m = sessionUpdate(m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.current != screenMenu {
		t.Fatal("Esc should return to the menu")
	}

	// Pick the smallest board, then start.
	m = sessionUpdate(m, tea.KeyMsg{Type: tea.KeyUp})
	for i := 0; i < 10; i++ {
		m = sessionUpdate(m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	m = sessionUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatal("Start should open the game")
	}
	if m.config.Size != 5 || m.config.Player != "ann" {
		t.Errorf("Game started with %+v", m.config)
	}
	if m.View() == "" {
		t.Error("Game view should not be empty")
	}

	m = sessionUpdate(m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.current != screenMenu {
		t.Fatal("Esc in game should return to the menu")
	}
	if m.menu.Config().Size != 5 {
		t.Errorf("Menu should keep the last size, got %d", m.menu.Config().Size)
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}
