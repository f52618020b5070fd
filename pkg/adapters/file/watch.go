package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch signals on the returned channel whenever a wizard file in the
// directory is created, written, renamed or removed. Bursts of events within
// Debounce collapse into one signal. The channel closes when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(l.Dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.Dir, err)
	}

	debounce := l.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer fsw.Close()

		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !isWizardFile(filepath.Base(ev.Name)) || ev.Op == fsnotify.Chmod {
					continue
				}
				fire = time.After(debounce)
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			case <-fire:
				fire = nil
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
