package main

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"
)

const configFileName = ".flowedit.yaml"

type Colors struct {
	Edge           string `yaml:"edge" validate:"css_color"`
	NodeOutline    string `yaml:"node_outline" validate:"css_color"`
	NodeFill       string `yaml:"node_fill" validate:"css_color"`
	TerminatorFill string `yaml:"terminator_fill" validate:"css_color"`
	Text           string `yaml:"text" validate:"css_color"`
	Background     string `yaml:"background" validate:"css_color"`
}

type Config struct {
	SaveDirectory string  `yaml:"save_directory"`
	StartMenu     bool    `yaml:"start_menu"`
	Confirmations bool    `yaml:"confirmations"`
	SnapToGrid    bool    `yaml:"snap_to_grid"`
	GridSpacing   float64 `yaml:"grid_spacing" validate:"gte=2"`
	CellWidth     float64 `yaml:"cell_width" validate:"gte=1"`
	CellHeight    float64 `yaml:"cell_height" validate:"gte=1"`
	NodeWidth     float64 `yaml:"node_width" validate:"gte=20"`
	NodeHeight    float64 `yaml:"node_height" validate:"gte=20"`
	LogFile       string  `yaml:"log_file"`
	Colors        Colors  `yaml:"colors"`

	// path the config was read from, empty for defaults
	path string
}

func defaultConfig() *Config {
	return &Config{
		StartMenu:     true,
		Confirmations: true,
		SnapToGrid:    true,
		GridSpacing:   20,
		CellWidth:     10,
		CellHeight:    20,
		NodeWidth:     120,
		NodeHeight:    60,
		Colors: Colors{
			Edge:           "#334155",
			NodeOutline:    "#334155",
			NodeFill:       "#ffffff",
			TerminatorFill: "#e0e0e0",
			Text:           "#0f172a",
			Background:     "#ffffff",
		},
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(homeDir, configFileName)
}

// loadConfig reads the YAML config at path, or ~/.flowedit.yaml when path is
// empty. A missing file yields the defaults. A broken file also yields the
// defaults, together with the error so it can be shown to the user.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		path = defaultConfigPath()
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}

	loaded := defaultConfig()
	if err := yaml.Unmarshal(b, loaded); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	if err := validateStruct(loaded); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	loaded.SaveDirectory = expandPath(loaded.SaveDirectory)
	loaded.LogFile = expandPath(loaded.LogFile)
	loaded.path = path
	return loaded, nil
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(homeDir, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// LogPath is where debug logs go. The terminal belongs to the UI so logs
// never go to stderr while it runs.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	dir := filepath.Dir(defaultConfigPath())
	if c.path != "" {
		dir = filepath.Dir(c.path)
	}
	return filepath.Join(dir, "flowedit.log")
}

func (c *Config) Layout() Layout {
	return Layout{
		Grid:       c.GridSpacing,
		CellWidth:  c.CellWidth,
		CellHeight: c.CellHeight,
		NodeWidth:  c.NodeWidth,
		NodeHeight: c.NodeHeight,
		Snap:       c.SnapToGrid,
	}
}

func parseColor(s string) (color.Color, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return nil, err
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// darken lowers the lightness of a color by 10%.
func darken(c color.Color) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	h, s, l := cf.Hsl()
	return colorful.Hsl(h, s, l-.1).Clamped()
}

// palette is the parsed form of Colors.
type palette struct {
	edge, outline, fill, terminatorFill, text, background color.Color
}

func (c Colors) palette() palette {
	get := func(s, fallback string) color.Color {
		col, err := parseColor(s)
		if err != nil {
			col, _ = parseColor(fallback)
		}
		return col
	}
	d := defaultConfig().Colors
	return palette{
		edge:           get(c.Edge, d.Edge),
		outline:        get(c.NodeOutline, d.NodeOutline),
		fill:           get(c.NodeFill, d.NodeFill),
		terminatorFill: get(c.TerminatorFill, d.TerminatorFill),
		text:           get(c.Text, d.Text),
		background:     get(c.Background, d.Background),
	}
}
