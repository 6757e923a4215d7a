package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"flowedit/routing"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "flowedit:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("flowedit", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "config file (default ~/"+configFileName+")")
	exportPNG := flags.String("export-png", "", "render the chart to a PNG file and exit")
	exportTXT := flags.String("export-txt", "", "render the chart as terminal text and exit")
	watch := flags.BoolP("watch", "w", false, "reload the chart when the file changes on disk")
	debug := flags.BoolP("debug", "d", false, "write debug messages to the log file")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: flowedit [flags] [chart.json|flowchart.mmd]\n\nFlags:\n%s", flags.FlagUsages())
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, cfgErr := loadConfig(*configPath)
	headless := *exportPNG != "" || *exportTXT != ""

	logger, closeLog := newLogger(cfg, *debug, headless)
	defer closeLog()
	if cfgErr != nil {
		logger.Warn(ctx, "using default config", slog.F("err", cfgErr))
	}

	router := routing.NewRouter(routing.Options{
		GridSpacing: cfg.GridSpacing,
		Logger:      logger,
	})
	m := initialModel(ctx, cfg, router, logger)
	if cfgErr != nil {
		m.errorMessage = "config: " + cfgErr.Error()
	}

	if headless {
		if flags.NArg() != 1 {
			return errors.New("exporting needs exactly one chart file")
		}
		return exportChart(&m, flags.Arg(0), *exportPNG, *exportTXT)
	}

	if flags.NArg() > 0 {
		path := flags.Arg(0)
		m.fromStartup = true
		m.open(path)
		if m.errorMessage != "" {
			return errors.New(m.errorMessage)
		}
		m.fromStartup = false
		m.mode = ModeNormal

		if *watch {
			w, err := newFileWatcher(ctx, path, logger)
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			defer w.Close()
			m.watcher = w
		}
	} else if *watch {
		return errors.New("--watch needs a chart file")
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// newLogger logs to stderr for headless runs and to the log file otherwise,
// the terminal belongs to the UI.
func newLogger(cfg *Config, debug, headless bool) (slog.Logger, func()) {
	var w io.Writer = os.Stderr
	closeLog := func() {}
	if !headless {
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return slog.Make(), closeLog
		}
		w = f
		closeLog = func() { f.Close() }
	}
	logger := slog.Make(sloghuman.Sink(w)).Named("flowedit")
	if debug {
		logger = logger.Leveled(slog.LevelDebug)
	}
	return logger, closeLog
}

func initialModel(ctx context.Context, cfg *Config, router *routing.Router, logger slog.Logger) model {
	m := model{
		ctx:          ctx,
		log:          logger,
		config:       cfg,
		router:       router,
		mode:         ModeNormal,
		selectedNode: -1,
		selectedEdge: -1,
		linkFrom:     -1,
	}
	if cfg.StartMenu {
		m.mode = ModeStartup
	}
	m.addNewBuffer(m.newCanvas(), "", "")
	return m
}

func exportChart(m *model, path, png, txt string) error {
	canvas, _, err := m.loadChart(path)
	if err != nil {
		return err
	}
	if n := len(canvas.Unplaced()); n > 0 {
		m.log.Warn(m.ctx, "nodes without a position are left out", slog.F("count", n))
	}
	if png != "" {
		if err := canvas.ExportToPNG(png, m.config.Colors.palette()); err != nil {
			return err
		}
		m.log.Info(m.ctx, "exported", slog.F("path", png))
	}
	if txt != "" {
		if err := canvas.ExportVisualTXT(txt); err != nil {
			return err
		}
		m.log.Info(m.ctx, "exported", slog.F("path", txt))
	}
	return nil
}
