package eval

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gnolang/qeval/internal/quant"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last change before the
// watcher reloads. A burst of events inside it causes a single reload.
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc receives the configuration and report produced by a reload.
// On failure err is set and report is zero.
type ChangeFunc func(config Config, report quant.Report, err error)

// Watcher re-evaluates a configuration file every time it changes.
type Watcher struct {
	path     string
	logger   *zap.Logger
	onChange ChangeFunc
	debounce time.Duration

	// reloadMu keeps callbacks from overlapping.
	reloadMu sync.Mutex

	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	isWatching bool
	done       chan struct{}
}

// NewWatcher creates a watcher for the configuration file at path.
func NewWatcher(logger *zap.Logger, path string, onChange ChangeFunc) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		logger:   logger,
		onChange: onChange,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides DefaultDebounce. It must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Reload loads the configuration, evaluates it and reports the outcome to
// the change callback. Concurrent calls run one at a time.
func (w *Watcher) Reload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	config, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Error("Error loading configuration", zap.String("path", w.path), zap.Error(err))
		w.onChange(config, quant.Report{}, err)
		return
	}

	report, err := Evaluate(w.logger, New(config), config)
	w.onChange(config, report, err)
}

// Start begins watching. The directory holding the file is watched rather
// than the file itself, so that editors replacing the file are seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isWatching {
		return errors.New("already watching")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}

	w.watcher = fw
	w.done = make(chan struct{})
	w.isWatching = true
	go w.watchLoop(fw, w.done)
	return nil
}

// Stop stops watching and waits for the watch loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.isWatching {
		w.mu.Unlock()
		return errors.New("not watching")
	}
	w.isWatching = false
	fw, done := w.watcher, w.done
	w.mu.Unlock()

	err := fw.Close()
	<-done
	return err
}

func (w *Watcher) watchLoop(fw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.isConfigChange(event) {
				continue
			}
			w.logger.Debug("Configuration changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))

			// restart the quiet period
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
			fire = timer.C
		case <-fire:
			fire = nil
			w.Reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) isConfigChange(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
