package main

import (
	"context"
	"strings"
	"testing"

	"cdr.dev/slog/sloggers/slogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewLayout(t *testing.T) {
	t.Parallel()

	m, _, _ := twoBoxModel(t)
	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 30)
	assert.Equal(t, '█', runeAt(lines, 0, 0))
	assert.Contains(t, lines[4], "process")
	assert.Contains(t, lines[29], "NORMAL")

	m = press(m, "N")
	lines = strings.Split(m.View(), "\n")
	require.Len(t, lines, 30)
	assert.Contains(t, lines[0], "Open Charts")
}

func TestHelpView(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = press(m, "?")
	assert.Contains(t, m.View(), "flowedit Help")
	m = press(m, "j")
	assert.Equal(t, 1, m.helpScroll)
	m = press(m, "esc")
	assert.False(t, m.help)
	assert.NotContains(t, m.View(), "flowedit Help")
}

func TestStartupView(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	m := initialModel(context.Background(), cfg, newTestRouter(t), slogtest.Make(t, nil))
	m.width, m.height = 80, 30
	require.Equal(t, ModeStartup, m.mode)
	assert.Contains(t, m.View(), "Welcome to flowedit!")

	m = press(m, "n")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestEditDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab█", editDisplay("ab", 2))
	assert.Equal(t, "a█↵c", editDisplay("ab\nc", 1))
}
