package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/abhisek/mathcards/internal/logging"
)

// Watcher reloads a local deck file when it changes on disk.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onReload func([]Card)
	logger   *zap.Logger

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher watches the deck at path. onReload receives the freshly
// normalized cards after writes settle for debounce. A file that fails to
// parse is logged and skipped, keeping the previous deck on screen.
func NewWatcher(path string, debounce time.Duration, onReload func([]Card), logger *zap.Logger) (*Watcher, error) {
	logger = logging.OrNop(logger)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file via rename.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		fsw:      fsw,
		debounce: debounce,
		onReload: onReload,
		logger:   logger.With(zap.String("deck", abs)),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start runs the event loop until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	if w.started.Swap(true) {
		return
	}
	go w.run(ctx)
}

// Close stops the event loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.fsw.Close()
	})
	if w.started.Load() {
		<-w.doneCh
	}
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("deck watcher error", zap.Error(err))
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("read deck after change", zap.Error(err))
		return
	}
	cards, err := Normalize(raw)
	if err != nil {
		w.logger.Warn("deck changed but does not parse", zap.Error(err))
		return
	}
	w.logger.Info("deck reloaded", zap.Int("cards", len(cards)))
	if w.onReload != nil {
		w.onReload(cards)
	}
}
