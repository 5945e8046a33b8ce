package app

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits after the last filesystem
// event before regenerating. Editors and sync tools write in bursts.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-runs generation whenever the schema directory changes.
type Watcher struct {
	gen      *Generator
	dir      string
	debounce atomic.Int64
	logger   zerolog.Logger
}

// NewWatcher creates a watcher over the schema directory.
// debounce <= 0 selects DefaultDebounce.
func NewWatcher(gen *Generator, dir string, debounce time.Duration, logger zerolog.Logger) *Watcher {
	w := &Watcher{gen: gen, dir: dir, logger: logger}
	w.SetDebounce(debounce)
	return w
}

// SetDebounce replaces the debounce interval. Events arriving after the call
// use the new interval.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d <= 0 {
		d = DefaultDebounce
	}
	w.debounce.Store(int64(d))
}

func (w *Watcher) debounceInterval() time.Duration {
	return time.Duration(w.debounce.Load())
}

// Run performs an initial generation, then blocks regenerating on schema
// changes until the context is cancelled. The initial run's error is
// returned; errors on subsequent runs are logged and watching continues, so
// a transient bad edit does not kill the watch.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.gen.Run(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info().Str("dir", w.dir).Msg("watching schema directory")

	timer := time.NewTimer(w.debounceInterval())
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(filepath.Base(event.Name), ".json") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug().Str("event", event.Op.String()).Str("file", event.Name).Msg("schema change")
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounceInterval())
			pending = true

		case <-timer.C:
			pending = false
			if _, err := w.gen.Run(ctx); err != nil {
				w.logger.Error().Err(err).Msg("regeneration failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("schema watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}
