package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissing(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	saveDir := filepath.Join(t.TempDir(), "charts")
	path := writeConfig(t, `
save_directory: `+saveDir+`
confirmations: false
grid_spacing: 10
node_width: 160
colors:
  edge: rebeccapurple
  background: "rgb(0, 0, 0)"
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, saveDir, cfg.SaveDirectory)
	assert.False(t, cfg.Confirmations)
	assert.True(t, cfg.StartMenu)
	assert.Equal(t, 10.0, cfg.GridSpacing)
	assert.Equal(t, Layout{Grid: 10, CellWidth: 10, CellHeight: 20, NodeWidth: 160, NodeHeight: 60, Snap: true}, cfg.Layout())
	assert.Equal(t, "#ffffff", cfg.Colors.NodeFill)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "flowedit.log"), cfg.LogPath())
	assert.Equal(t, filepath.Join(saveDir, "a.json"), cfg.GetSavePath("a.json"))
	assert.DirExists(t, saveDir)

	p := cfg.Colors.palette()
	assert.Equal(t, color.NRGBA{R: 102, G: 51, B: 153, A: 255}, p.edge)
	assert.Equal(t, color.NRGBA{A: 255}, p.background)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		err     string
	}{
		{
			name:    "malformed",
			content: "grid_spacing: [",
			err:     "yaml",
		},
		{
			name:    "grid_too_small",
			content: "grid_spacing: 1",
			err:     "GridSpacing: must be at least 2",
		},
		{
			name:    "bad_color",
			content: "colors:\n  text: not-a-color\n",
			err:     `"not-a-color" is not a color`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := loadConfig(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.err)
			assert.Equal(t, defaultConfig(), cfg)
		})
	}
}

func TestDarken(t *testing.T) {
	t.Parallel()

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	r, g, b, _ := darken(white).RGBA()
	assert.Less(t, r, uint32(0xffff))
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)

	_, err := parseColor("#12345")
	assert.Error(t, err)
}
