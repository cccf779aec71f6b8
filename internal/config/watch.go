package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDelay = 100 * time.Millisecond

// Watcher reloads the configuration when one of its files changes.
type Watcher struct {
	workingDir string
	debug      bool
	fsw        *fsnotify.Watcher
	files      map[string]bool
}

// NewWatcher starts watching the directories of every configuration file
// Load reads. Directories that don't exist are skipped.
func NewWatcher(workingDir string, debug bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	w := &Watcher{
		workingDir: workingDir,
		debug:      debug,
		fsw:        fsw,
		files:      map[string]bool{},
	}
	paths := []string{
		GlobalConfig(),
		GlobalConfigData(),
		filepath.Join(workingDir, appName+".json"),
		filepath.Join(workingDir, "."+appName+".json"),
	}
	dirs := map[string]bool{}
	for _, path := range paths {
		w.files[filepath.Clean(path)] = true
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsw.Add(dir); err != nil {
			slog.Debug("Not watching config directory", "dir", dir, "error", err)
		}
	}
	return w, nil
}

// Run calls fn with the reloaded configuration after every burst of changes.
// It blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(*Config, error)) {
	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			slog.Info("Config changed, reloading")
			fn(Load(w.workingDir, w.debug))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
