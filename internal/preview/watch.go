package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/richmanstudio/studio/internal/logger"
)

// FileWatcher feeds every write to a file through a pipeline.
type FileWatcher struct {
	path       string
	pipeline   *Pipeline
	onRendered func(Document)
	log        *logger.Logger
	fs         *fsnotify.Watcher
}

// NewFileWatcher watches path. The parent directory is watched so editors
// that replace the file on save are still picked up.
func NewFileWatcher(path string, p *Pipeline, onRendered func(Document), log *logger.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if log == nil {
		log = logger.Discard()
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{path: abs, pipeline: p, onRendered: onRendered, log: log, fs: fs}, nil
}

// Run renders the current file contents immediately, then schedules a
// render on each change until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) error {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.path, err)
	}
	w.onRendered(Render(string(raw)))
	defer w.pipeline.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if abs, _ := filepath.Abs(event.Name); abs != w.path {
				continue
			}
			raw, err := os.ReadFile(w.path)
			if err != nil {
				w.log.Warn("preview watcher: read failed", "path", w.path, "error", err)
				continue
			}
			w.pipeline.Schedule(string(raw), w.onRendered)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("preview watcher: error", "error", err)
		}
	}
}

// Close stops watching.
func (w *FileWatcher) Close() error {
	return w.fs.Close()
}
