package api

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/config"
)

// debounceDelay coalesces bursts of events on one file.
const debounceDelay = 100 * time.Millisecond

// FileChangeType indicates what type of change occurred.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
	FileChangeDeleted  FileChangeType = "deleted"
)

// FileChangeKind indicates which data file changed.
type FileChangeKind string

const (
	FileChangeKindAnimal   FileChangeKind = "animal"
	FileChangeKindStaff    FileChangeKind = "staff"
	FileChangeKindMilk     FileChangeKind = "milk"
	FileChangeKindLogin    FileChangeKind = "login"
	FileChangeKindSettings FileChangeKind = "settings"
	FileChangeKindUnknown  FileChangeKind = "unknown"
)

var fileKinds = map[string]FileChangeKind{
	config.AnimalFileName:     FileChangeKindAnimal,
	config.StaffFileName:      FileChangeKindStaff,
	config.MilkFileName:       FileChangeKindMilk,
	config.StaffLoginFileName: FileChangeKindLogin,
	config.OwnerLoginFileName: FileChangeKindLogin,
	config.SettingsFileName:   FileChangeKindSettings,
}

// FileChange represents a data file change notification.
type FileChange struct {
	Type FileChangeType `json:"type"`
	Kind FileChangeKind `json:"kind"`
	File string         `json:"file"`
}

// FileWatcherSubscriber receives file change notifications.
type FileWatcherSubscriber interface {
	OnFileChange(change FileChange)
}

// FileWatcher watches the data directory and notifies subscribers about
// changes to known data files. Dot files, such as rewrite temp files, are
// ignored.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	dataDir     string
	logger      *zap.Logger
	mu          sync.RWMutex
	subscribers []FileWatcherSubscriber
	debounce    map[string]*time.Timer
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewFileWatcher creates a new file watcher for dataDir.
func NewFileWatcher(dataDir string, logger *zap.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileWatcher{
		watcher:  watcher,
		dataDir:  dataDir,
		logger:   logger,
		debounce: make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber to receive file change notifications.
func (fw *FileWatcher) Subscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.subscribers = append(fw.subscribers, sub)
}

// Unsubscribe removes a subscriber.
func (fw *FileWatcher) Unsubscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	for i, s := range fw.subscribers {
		if s == sub {
			fw.subscribers = append(fw.subscribers[:i], fw.subscribers[i+1:]...)
			return
		}
	}
}

// Start begins watching the data directory.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("file watcher cannot be restarted after stop")
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(fw.dataDir); err != nil {
		return fmt.Errorf("watch %s: %w", fw.dataDir, err)
	}

	go fw.run()
	return nil
}

// Stop stops watching for changes.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running || fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.running = false
	fw.stopped = true
	fw.mu.Unlock()

	// Pending timers must not fire after stop.
	fw.debounceMu.Lock()
	for path, timer := range fw.debounce {
		timer.Stop()
		delete(fw.debounce, path)
	}
	fw.debounceMu.Unlock()

	close(fw.stopCh)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", zap.Error(err))

		case <-fw.stopCh:
			return
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return
	}

	fw.debounceMu.Lock()
	if timer, exists := fw.debounce[event.Name]; exists {
		timer.Stop()
	}
	fw.debounce[event.Name] = time.AfterFunc(debounceDelay, func() {
		fw.emitChange(event)
		fw.debounceMu.Lock()
		delete(fw.debounce, event.Name)
		fw.debounceMu.Unlock()
	})
	fw.debounceMu.Unlock()
}

func (fw *FileWatcher) emitChange(event fsnotify.Event) {
	// A debounce timer may fire after Stop.
	fw.mu.RLock()
	if fw.stopped {
		fw.mu.RUnlock()
		return
	}
	subs := make([]FileWatcherSubscriber, len(fw.subscribers))
	copy(subs, fw.subscribers)
	fw.mu.RUnlock()

	change := classifyChange(event)
	if change.Kind == FileChangeKindUnknown {
		return
	}

	fw.logger.Debug("data file changed",
		zap.String("file", change.File),
		zap.String("type", string(change.Type)))

	for _, sub := range subs {
		sub.OnFileChange(change)
	}
}

// classifyChange maps an event to a known data file. Events on other
// files come back as FileChangeKindUnknown.
func classifyChange(event fsnotify.Event) FileChange {
	file := filepath.Base(event.Name)
	kind, ok := fileKinds[file]
	if !ok {
		return FileChange{Kind: FileChangeKindUnknown}
	}

	change := FileChange{Kind: kind, File: file}
	switch {
	case event.Op&fsnotify.Create != 0:
		change.Type = FileChangeCreated
	case event.Op&fsnotify.Write != 0:
		change.Type = FileChangeModified
	case event.Op&fsnotify.Remove != 0:
		change.Type = FileChangeDeleted
	case event.Op&fsnotify.Rename != 0:
		change.Type = FileChangeDeleted // Rename source is effectively deleted
	default:
		return FileChange{Kind: FileChangeKindUnknown}
	}
	return change
}
