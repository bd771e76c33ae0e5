package activity

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce is how long the watcher waits for writes to settle.
const DefaultReloadDebounce = 250 * time.Millisecond

// WatchConfig configures keyword table hot reloading.
type WatchConfig struct {
	// Path is the keyword table file.
	Path string

	// Debounce collapses bursts of writes into one reload.
	Debounce time.Duration

	Logger *slog.Logger

	// OnReload is called after a successful reload. Optional.
	OnReload func(*KeywordTable)
}

// Watch reloads the keyword table at cfg.Path into c whenever the file changes,
// until ctx is cancelled. A table that fails to load is logged and ignored, so
// c keeps serving the last good table.
func Watch(ctx context.Context, cfg WatchConfig, c *Categorizer) error {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultReloadDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	target, err := filepath.Abs(cfg.Path)
	if err != nil {
		return fmt.Errorf("resolve keyword table path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file rather than write it.
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer fsw.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(cfg.Debounce)
				} else {
					timer.Reset(cfg.Debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				t, err := LoadKeywordTable(target)
				if err != nil {
					cfg.Logger.Error("keyword table reload failed", "path", target, "error", err)
					continue
				}
				c.SetTable(t)
				cfg.Logger.Info("keyword table reloaded", "path", target, "version", t.Version)
				if cfg.OnReload != nil {
					cfg.OnReload(t)
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				cfg.Logger.Error("keyword table watcher error", "error", err)
			}
		}
	}()

	return nil
}
