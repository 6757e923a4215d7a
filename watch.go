package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cdr.dev/slog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg tells the editor the watched chart changed on disk.
type fileChangedMsg struct {
	path string
}

// fileWatcher reports changes to a single chart file. The parent directory
// is watched because editors tend to replace files instead of writing them.
type fileWatcher struct {
	path    string
	log     slog.Logger
	fw      *fsnotify.Watcher
	changes chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc

	mu       sync.Mutex
	ownWrite time.Time
}

func newFileWatcher(ctx context.Context, path string, log slog.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	w := &fileWatcher{
		path:    abs,
		log:     log.Named("watch"),
		fw:      fw,
		changes: make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	go func() {
		err := w.run()
		if err != nil && !errors.Is(err, context.Canceled) {
			w.log.Error(ctx, "watcher stopped", slog.F("err", err))
		}
	}()
	return w, nil
}

func (w *fileWatcher) run() error {
	eatBurstTimer := time.NewTimer(0)
	<-eatBurstTimer.C
	lastModified := modTime(w.path)

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			w.log.Debug(w.ctx, "file system event", slog.F("event", ev.String()))
			mt := modTime(w.path)
			if ev.Op == fsnotify.Chmod && mt.Equal(lastModified) {
				// benign chmod
				continue
			}
			lastModified = mt
			// Editors emit bursts of chmod/write/rename for one save.
			eatBurstTimer.Reset(16 * time.Millisecond)
		case <-eatBurstTimer.C:
			if w.isOwnWrite(modTime(w.path)) {
				continue
			}
			w.log.Info(w.ctx, "detected change", slog.F("path", w.path))
			w.requestReload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.log.Error(w.ctx, "fsnotify error", slog.F("err", err))
		case <-w.ctx.Done():
			return w.ctx.Err()
		}
	}
}

func (w *fileWatcher) requestReload() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// noteWrite marks the current state of the file as written by the editor
// so saving does not trigger a reload.
func (w *fileWatcher) noteWrite() {
	w.mu.Lock()
	w.ownWrite = modTime(w.path)
	w.mu.Unlock()
}

func (w *fileWatcher) isOwnWrite(mt time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !mt.IsZero() && mt.Equal(w.ownWrite)
}

func (w *fileWatcher) watches(path string) bool {
	abs, err := filepath.Abs(path)
	return err == nil && abs == w.path
}

// wait blocks until the next change and turns it into a message.
func (w *fileWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.changes:
			return fileChangedMsg{path: w.path}
		case <-w.ctx.Done():
			return nil
		}
	}
}

func (w *fileWatcher) Close() error {
	w.cancel()
	return w.fw.Close()
}

func modTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}
