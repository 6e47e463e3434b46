package snapshotdb

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core"
)

// Watch reloads the store whenever another process writes the snapshot file.
// Two processes sharing the key still race at whole-snapshot granularity
// (last-write-wins); watching only narrows the window by picking up external
// writes instead of silently overwriting them on the next mutation.
//
// Returns a stop function. Memory-only backends have nothing to watch and get
// a no-op stop function back.
func Watch(store *Store, logger core.Logger) (stop func(), err error) {
	path := store.backend.Path(SnapshotKey)
	if path == "" {
		return func() {}, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating snapshot watcher")
	}
	// watch the directory: the snapshot file is replaced by rename and may not
	// exist yet on first run
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrap(err, "watching snapshot dir")
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					store.Reload()
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if logger != nil {
					logger.Warn("snapshot: watcher error", werr)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		_ = watcher.Close()
	}, nil
}
