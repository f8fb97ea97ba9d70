// Package instructions loads the markdown instruction files that shape LLM
// output. Instructions are cached after first read; an optional watcher
// invalidates the cache when a file changes on disk, so prompt tuning does
// not require a restart.
package instructions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// ErrNotFound indicates a named instruction file does not exist.
var ErrNotFound = errors.New("instruction not found")

// Loader reads named markdown instructions from a directory.
type Loader struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// NewLoader creates a loader for the given instructions directory.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]string),
	}
}

// Load returns the content of the named instruction (without the .md
// extension). Content is cached until invalidated.
func (l *Loader) Load(name string) (string, error) {
	l.mu.RLock()
	content, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return content, nil
	}

	path := filepath.Join(l.dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			available, _ := l.List()
			return "", fmt.Errorf("%w: %q (available: %s)",
				ErrNotFound, name, strings.Join(available, ", "))
		}
		return "", fmt.Errorf("read instruction %q: %w", name, err)
	}

	content = string(data)
	l.mu.Lock()
	l.cache[name] = content
	l.mu.Unlock()

	l.logger.Debug("loaded instruction", "name", name, "length", len(content))
	return content, nil
}

// List returns the names of all available instructions, sorted.
func (l *Loader) List() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(l.dir), "**/*.md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list instructions: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.ToSlash(m), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate drops a cached instruction, or the whole cache when name is
// empty.
func (l *Loader) Invalidate(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if name == "" {
		l.cache = make(map[string]string)
		return
	}
	delete(l.cache, name)
}

// Watch invalidates cached instructions when their files change. It blocks
// until the context is cancelled or the watcher fails.
func (l *Loader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("watch %s: %w", l.dir, err)
	}

	l.logger.Info("instruction watcher started", "dir", l.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".md" {
				continue
			}
			name := strings.TrimSuffix(filepath.Base(event.Name), ".md")
			l.Invalidate(name)
			l.logger.Debug("instruction cache invalidated",
				"name", name,
				"op", event.Op.String())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Error("instruction watcher error", "error", err)
		}
	}
}

// WithContext substitutes {{key}} placeholders in an instruction with the
// given context values. Unknown placeholders are left as-is.
func WithContext(instruction string, context map[string]string) string {
	result := instruction
	for key, value := range context {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}
