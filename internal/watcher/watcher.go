// Package watcher reports modifications to the edited file made by other
// processes, with debouncing.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/modal/internal/log"
	"github.com/zjrosen/modal/internal/pubsub"
)

// Change describes the file after a burst of events has settled.
type Change struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Watcher monitors one file and publishes a Change once it settles.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[Change]
	done      chan struct{}
	stopOnce  sync.Once
}

// Config holds watcher configuration options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 200 * time.Millisecond,
	}
}

// New creates a watcher for cfg.Path.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("negative debounce %s", cfg.Debounce)
	}
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      path,
		debounce:  cfg.Debounce,
		broker:    pubsub.NewBrokerWithBuffer[Change](4),
		done:      make(chan struct{}),
	}, nil
}

// Subscribe returns a channel of settled changes, closed when ctx ends or the
// watcher stops.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return w.broker.Subscribe(ctx)
}

// Broker exposes the underlying broker for bubbletea listeners.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Start begins watching the directory containing the file. Editors replace
// files by rename, so watching the file itself would lose track of it.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching", "path", w.path, "debounce", w.debounce)

	go w.loop()
	return nil
}

// Stop terminates the watcher and closes all subscriptions. Safe to call
// more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.broker.Close()
	})
	return err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				w.publish()
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// publish stats the file and reports whether it changed or vanished.
func (w *Watcher) publish() {
	info, err := os.Stat(w.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug(log.CatWatcher, "file removed", "path", w.path)
		w.broker.Publish(pubsub.RemovedEvent, Change{Path: w.path})
	case err != nil:
		log.ErrorErr(log.CatWatcher, "stat failed", err, "path", w.path)
	default:
		log.Debug(log.CatWatcher, "file changed", "path", w.path, "size", info.Size())
		w.broker.Publish(pubsub.ChangedEvent, Change{
			Path:    w.path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
}

// isRelevantEvent checks if the event touches the watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
