package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a settings file whenever it changes on disk.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching path and calls onChange from its own goroutine with
// the reloaded config, or with the load error. Hosts must hand the result
// over to their event loop before touching an editor.
func Watch(path string, onChange func(*Config, error)) (*Watcher, error) {
	path = filepath.Clean(path)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory; many editors save by renaming over the file.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{fw: fw, done: make(chan struct{})}

	go func() {
		defer close(w.done)
		debounceTimer := time.NewTimer(reloadDebounce)
		debounceTimer.Stop()

		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounceTimer.Reset(reloadDebounce)

			case <-debounceTimer.C:
				onChange(LoadFile(path))

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				onChange(nil, err)
			}
		}
	}()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
