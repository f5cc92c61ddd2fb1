// Package watch notifies the frontends when the browsed root directory
// changes on disk, so the selection tree can be refreshed.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"concatd/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Refresh is a change event for a watched directory.
type Refresh struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors directories for changes using fsnotify and emits refresh
// signals. It watches the listed directories themselves, not their subtrees.
type Watcher struct {
	// Directories being watched
	directories []string

	// Channel delivering refresh signals
	refreshChan chan Refresh

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the directories list
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a new directory watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		directories: []string{},
		refreshChan: make(chan Refresh, 10),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
		running:     false,
	}, nil
}

// AddDirectory adds a directory to watch
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existingDir := range w.directories {
		if existingDir == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return nil
}

// RefreshChannel returns the channel that delivers refresh signals
func (w *Watcher) RefreshChannel() <-chan Refresh {
	return w.refreshChan
}

// Start begins the watching process
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	// Create a new stop channel each time Start is called
	w.stopChan = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return // Channel closed
				}

				// Creations, removals, and renames change what the tree
				// should show; plain writes don't.
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
					continue
				}

				refresh := Refresh{
					Path:      event.Name,
					Timestamp: time.Now(),
					Op:        event.Op,
				}

				// Send non-blockingly so a slow consumer can't stall the loop
				select {
				case w.refreshChan <- refresh:
				default:
					log.LogWithFields(log.F("file", event.Name)).Warn("Refresh channel is full, dropped event")
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return // Channel closed
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	log.Info("Watcher started.")
	return nil
}

// Stop halts the watching process
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return // Already stopped
	}

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	w.running = false

	// Close the public channel after stopping everything else, under the
	// lock to prevent races with RefreshChannel()
	close(w.refreshChan)

	log.Info("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the list of directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}
