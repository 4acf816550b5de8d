package corpus

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the corpus file and reloads the store when it changes
// outside the process (an operator editing the knowledge base by hand).
// After a successful reload it invokes the onChange callback, which is where
// the owner triggers an index rebuild.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a watcher for the store's backing file.
// onChange may be nil.
func NewWatcher(store *Store, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace files by rename,
	// which drops a direct file watch.
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		store:    store,
		watcher:  fsw,
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		logger:   slog.Default().With("component", "corpus-watcher"),
	}, nil
}

// Run processes file events until the context is canceled.
// Bursts of events for one save are coalesced with a short debounce.
func (w *Watcher) Run(ctx context.Context) {
	target := filepath.Clean(w.store.Path())

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				// A fire racing this event leaves a stale value in the
				// channel; drain it so the reset starts a clean window.
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("corpus watch error", "err", err)
		}
	}
}

// Close stops the underlying file watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) reload() {
	if err := w.store.Reload(); err != nil {
		w.logger.Error("failed to reload knowledge base after change", "err", err)
		return
	}
	w.logger.Info("knowledge base reloaded", "items", w.store.Len())
	if w.onChange != nil {
		w.onChange()
	}
}
