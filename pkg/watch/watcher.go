package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"runbeam/harmony-validator/pkg/telemetry/logging"
)

// ErrAlreadyRunning is returned when Watch is called twice.
var ErrAlreadyRunning = errors.New("watcher already running")

// FileWatcherConfig contains configuration for the file watcher.
type FileWatcherConfig struct {
	// Paths are the files to watch. Their parent directories are watched so
	// that editors which replace files on save are still seen.
	Paths []string

	// DebounceInterval is the quiet period before changes are reported.
	DebounceInterval time.Duration

	// Extensions limits which files are reported. Empty reports all.
	Extensions []string
}

// FileWatcher reports debounced changes to a fixed set of files.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	config   FileWatcherConfig
	debounce *Debouncer

	files map[string]bool // absolute paths

	mu      sync.Mutex
	pending map[string]bool
	running bool
}

// NewFileWatcher creates a watcher for cfg.Paths.
func NewFileWatcher(cfg FileWatcherConfig, logger *logging.Logger) (*FileWatcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	files := make(map[string]bool, len(cfg.Paths))
	for _, path := range cfg.Paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
		}
		files[abs] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "watch.files"),
		config:   cfg,
		debounce: NewDebouncer(cfg.DebounceInterval),
		files:    files,
		pending:  make(map[string]bool),
	}, nil
}

// Watch blocks until ctx is cancelled, calling onChange with the sorted
// absolute paths that changed during each debounce window.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(paths []string)) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return ErrAlreadyRunning
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.debounce.Stop()
		fw.watcher.Close()
	}()

	dirs := make(map[string]bool)
	for file := range fw.files {
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
		dirs[dir] = true
	}

	fw.logger.Info("file watcher started",
		"files", len(fw.files),
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Debug("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())

			fw.mu.Lock()
			fw.pending[filepath.Clean(event.Name)] = true
			fw.mu.Unlock()

			fw.debounce.Trigger(func() {
				if paths := fw.drain(); len(paths) > 0 {
					onChange(paths)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) drain() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	paths := make([]string, 0, len(fw.pending))
	for path := range fw.pending {
		paths = append(paths, path)
	}
	fw.pending = make(map[string]bool)

	sort.Strings(paths)
	return paths
}

// shouldProcessEvent reports whether event concerns a watched file.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if !fw.files[filepath.Clean(event.Name)] {
		return false
	}
	return fw.hasValidExtension(strings.ToLower(filepath.Ext(event.Name)))
}

func (fw *FileWatcher) hasValidExtension(ext string) bool {
	if len(fw.config.Extensions) == 0 {
		return true
	}
	for _, valid := range fw.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}
