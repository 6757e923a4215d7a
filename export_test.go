package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowedit/routing"
)

func exportCanvas(t *testing.T) *Canvas {
	t.Helper()
	c := newTestCanvas(t)
	a := addBox(c, routing.CategoryDecision, 100, 100)
	b := addBox(c, routing.CategoryTerminator, 100, 300)
	_, err := c.AddEdge(a, b)
	require.NoError(t, err)
	return c
}

func TestExportToPNG(t *testing.T) {
	t.Parallel()

	c := exportCanvas(t)
	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, c.ExportToPNG(path, defaultConfig().Colors.palette()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	// nodes span 40..160 x 70..330, padded for labels on both sides
	assert.Equal(t, 350, img.Bounds().Dx())
	assert.Equal(t, 340, img.Bounds().Dy())
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestExportVisualTXT(t *testing.T) {
	t.Parallel()

	c := exportCanvas(t)
	path := filepath.Join(t.TempDir(), "chart.txt")
	require.NoError(t, c.ExportVisualTXT(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(b)
	assert.Contains(t, text, "▼")
	assert.Contains(t, text, "decision")
	assert.Contains(t, text, "terminator")
	assert.Contains(t, text, "Yes")
	for _, line := range strings.Split(text, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestExportEmptyCanvas(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	dir := t.TempDir()
	assert.Error(t, c.ExportVisualTXT(filepath.Join(dir, "empty.txt")))
	assert.Error(t, c.ExportToPNG(filepath.Join(dir, "empty.png"), defaultConfig().Colors.palette()))
	_, err := os.Stat(filepath.Join(dir, "empty.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportUnwritablePath(t *testing.T) {
	t.Parallel()

	c := exportCanvas(t)
	err := c.ExportVisualTXT(filepath.Join(t.TempDir(), "missing", "chart.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
