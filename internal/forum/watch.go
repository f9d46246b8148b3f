package forum

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// throttleDelay coalesces bursts of filesystem events so consumers see one
// window refresh per burst instead of one per written file.
const throttleDelay = 100 * time.Millisecond

// Subscribe watches the scope directory and redelivers the whole recent
// window whenever it changes. The first delivery carries no Added set; later
// deliveries diff against the previously delivered window by document ID.
// Cancelling ctx tears the watcher down and closes the channel.
func (s *DiskStore) Subscribe(ctx context.Context, scope string, limit int) (<-chan Snapshot, error) {
	if err := os.MkdirAll(s.scopeDir(scope), 0o755); err != nil {
		return nil, fmt.Errorf("forum: ensure scope directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("forum: create watcher: %w", err)
	}
	if err := watcher.Add(s.scopeDir(scope)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("forum: watch %s: %w", scope, err)
	}

	initial, err := s.Recent(scope, limit)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Snapshot, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		seen := make(map[string]struct{}, len(initial))
		for _, msg := range initial {
			seen[msg.ID] = struct{}{}
		}

		send := func(snap Snapshot) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- snap:
				return true
			}
		}

		if !send(Snapshot{Messages: initial}) {
			return
		}

		refresh := make(chan struct{}, 1)
		var pending *time.Timer
		defer func() {
			if pending != nil {
				pending.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if !send(Snapshot{Err: err}) {
					return
				}

			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				if pending == nil {
					pending = time.AfterFunc(throttleDelay, func() {
						select {
						case refresh <- struct{}{}:
						default:
						}
					})
				}

			case <-refresh:
				pending = nil

				window, err := s.Recent(scope, limit)
				if err != nil {
					if !send(Snapshot{Err: err}) {
						return
					}
					continue
				}

				var added []Message
				next := make(map[string]struct{}, len(window))
				for _, msg := range window {
					next[msg.ID] = struct{}{}
					if _, ok := seen[msg.ID]; !ok {
						added = append(added, msg)
					}
				}
				seen = next

				if !send(Snapshot{Messages: window, Added: added}) {
					return
				}
			}
		}
	}()

	return out, nil
}
