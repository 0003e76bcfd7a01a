package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// Watch calls fn after path is written, created or renamed into place, at
// most once per debounce window, until ctx is cancelled. The parent
// directory is watched so that editors replacing the file atomically are
// seen. Calls to fn never overlap, and none is running once Watch returns.
// Watch returns nil on cancellation.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func(context.Context)) error {
	if err := clerrors.ValidatePath(path); err != nil {
		return err
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return clerrors.Wrap(clerrors.ErrCodeInvalidPath, err, "resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return clerrors.Wrap(clerrors.ErrCodeFileNotFound, err, "watch %s", filepath.Dir(target))
	}

	d := NewDebouncer(debounce)

	var (
		running sync.Mutex
		stopped bool
	)
	run := func() {
		running.Lock()
		defer running.Unlock()
		if stopped || ctx.Err() != nil {
			return
		}
		fn(ctx)
	}
	// Wait for an in-flight fn and keep late timers from starting another.
	defer func() {
		d.Cancel()
		running.Lock()
		stopped = true
		running.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if relevant(ev, target) {
				d.Trigger(run)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

func relevant(ev fsnotify.Event, target string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
