package stringbar

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watcher is a stringbar watcher that watches the configuration file for
// changes. Triggers are coalesced: however many filesystem events a save
// produces, at most one reload is pending at a time.
type Watcher struct {
	Events chan struct{}

	w    *fsnotify.Watcher
	j    Journaler
	path string
}

// TryWatch attempts to watch the given configuration file, but it will log
// into the journaler and return nil if, for some reason, it fails to set up
// the watch. The caller is expected to fall back to polling.
func TryWatch(ctx context.Context, path string, j Journaler) *Watcher {
	w, err := NewWatcher(ctx, path, j)
	if err != nil {
		j.Write(&EventWarning{
			Component: "watcher",
			Error:     fmt.Sprintf("not watching config because: %v", err),
		})
		return nil
	}

	return w
}

// NewWatcher watches the given configuration file and delivers reload
// triggers on Events. The watcher is stopped once the given context is
// canceled.
func NewWatcher(ctx context.Context, path string, j Journaler) (*Watcher, error) {
	w := &Watcher{
		Events: make(chan struct{}, 1),
		j:      j,
		path:   filepath.Clean(path),
	}

	if err := w.init(); err != nil {
		return nil, err
	}

	go w.watch(ctx)
	return w, nil
}

func (w *Watcher) init() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}

	// Watch the parent directory rather than the file itself: editors that
	// save by rename-replace would otherwise detach the watch on the first
	// save.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return errors.Wrap(err, "failed to watch config directory")
	}

	w.w = watcher
	return nil
}

func (w *Watcher) watch(ctx context.Context) {
	defer w.w.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case err := <-w.w.Errors:
			w.j.Write(&EventWarning{
				Component: "watcher",
				Error:     "inotify error: " + err.Error(),
			})

		case evt := <-w.w.Events:
			if !w.triggers(evt) {
				continue
			}

			select {
			case w.Events <- struct{}{}:
			default:
				// A reload is already pending.
			}
		}
	}
}

// triggers reports whether the fsnotify event concerns the configuration
// file in a way that warrants a reload.
func (w *Watcher) triggers(evt fsnotify.Event) bool {
	if filepath.Clean(evt.Name) != w.path {
		return false
	}

	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	return evt.Op&ops != 0
}
