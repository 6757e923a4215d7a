package main

import (
	"context"
	"testing"

	"cdr.dev/slog/sloggers/slogtest"
	tea "github.com/charmbracelet/bubbletea"

	"flowedit/routing"
)

func testLayout() Layout {
	return Layout{Grid: 20, CellWidth: 10, CellHeight: 20, NodeWidth: 120, NodeHeight: 60}
}

func newTestRouter(t *testing.T) *routing.Router {
	t.Helper()
	return routing.NewRouter(routing.Options{GridSpacing: 20, Logger: slogtest.Make(t, nil)})
}

func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	return NewCanvas(newTestRouter(t), testLayout())
}

func addBox(c *Canvas, category routing.Category, x, y float64) int {
	return c.AddNodeWithState(NodeState{
		Category: category,
		X:        x,
		Y:        y,
		Width:    120,
		Height:   60,
		Text:     string(category),
		Placed:   true,
	})
}

func newTestModel(t *testing.T) model {
	t.Helper()
	cfg := defaultConfig()
	cfg.Confirmations = false
	cfg.SnapToGrid = false
	cfg.StartMenu = false
	m := initialModel(context.Background(), cfg, newTestRouter(t), slogtest.Make(t, nil))
	m.width, m.height = 80, 30
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m model, keys ...string) model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(model)
	}
	return m
}

func runeAt(lines []string, col, row int) rune {
	return []rune(lines[row])[col]
}
