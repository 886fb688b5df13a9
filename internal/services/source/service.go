// Package source loads a rig CSV export and reloads it when the file changes.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/shaker-dashboard-tui/internal/logger"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/normalize"
)

// Event represents a dataset source event.
type Event struct {
	Table *models.Table
	Error error
	Type  EventType
}

// EventType defines the type of source event.
type EventType int

const (
	EventDatasetLoaded EventType = iota
	EventDatasetChanged
	EventError
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// Options control file watching.
type Options struct {
	Debounce time.Duration
	Watch    bool
}

// Service holds the most recently loaded table and watches its file.
type Service struct {
	mu            sync.RWMutex
	table         *models.Table
	path          string
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// New loads path and, if requested, starts watching it for changes.
func New(path string, opts Options) (*Service, error) {
	if path == "" {
		return nil, errors.New("no data file: pass a CSV path or set SHAKER_DATA_PATH")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	s := &Service{
		path:      abs,
		debounce:  debounce,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	table, err := ReadFile(abs)
	if err != nil {
		return nil, err
	}
	s.table = table

	if opts.Watch {
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	s.sendEvent(Event{Type: EventDatasetLoaded, Table: table})

	return s, nil
}

// ReadFile reads a CSV file into a raw table named after the file.
func ReadFile(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return normalize.ReadCSV(f, filepath.Base(path))
}

// Events returns the event channel for subscribing to dataset changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Table returns the current table. A reload replaces it; the returned table is never mutated.
func (s *Service) Table() *models.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Path returns the absolute path of the watched file.
func (s *Service) Path() string {
	return s.path
}

// Reload re-reads the file. On failure the previous table is kept.
func (s *Service) Reload() (*models.Table, error) {
	table, err := ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	return table, nil
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory to survive editors that replace the file
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(s.debounce, s.handleFileChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the table after an external change.
func (s *Service) handleFileChange() {
	select {
	case <-s.stopChan:
		return
	default:
	}

	table, err := s.Reload()
	if err != nil {
		logger.Warn("dataset reload failed", "path", s.path, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	logger.Info("dataset reloaded", "path", s.path, "rows", len(table.Rows))
	s.sendEvent(Event{Type: EventDatasetChanged, Table: table})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
