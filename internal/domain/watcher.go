package domain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mouse-blink/sjv/internal/adapter"
	m "github.com/mouse-blink/sjv/internal/model"
)

// DefaultDebounce groups the burst of events an editor emits on save.
const DefaultDebounce = 100 * time.Millisecond

// Watch verifies the selected sources once and then again whenever one of
// them is written or created, until ctx is cancelled. Only verdicts are
// reported while watching; ill-formed sources do not stop the loop.
func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	filter, err := adapter.NewSourceFilter(args.Extensions, args.Exclude)
	if err != nil {
		return fmt.Errorf("failed to get sources: %w", err)
	}

	if err := w.Verify(args.VerifyArgs); err != nil && !isVerdictError(err) {
		return err
	}

	dirs, err := w.watchDirs(args.Paths)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}

		w.logger.Debug("watching directory", zap.String("dir", dir))
	}

	debounce := args.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	timer.Stop()

	pending := make(map[m.Path]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := w.fsAdapter.FileInfo(m.Path(event.Name)); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						w.logger.Error("failed to watch directory", zap.String("dir", event.Name), zap.Error(err))
					}

					continue
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !filter.Match(event.Name) {
				continue
			}

			w.logger.Debug("source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			pending[m.Path(event.Name)] = struct{}{}

			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Error("watch error", zap.Error(err))
		case <-timer.C:
			w.reverify(ctx, args.VerifyArgs, pending)
			pending = make(map[m.Path]struct{})
		}
	}
}

// reverify checks the changed sources and stores their reports.
func (w *workflow) reverify(ctx context.Context, args VerifyArgs, changed map[m.Path]struct{}) {
	sources := make([]m.Source, 0, len(changed))

	for path := range changed {
		hash, err := w.fsAdapter.HashFile(path)
		if err != nil {
			w.logger.Warn("failed to hash source", zap.String("path", string(path)), zap.Error(err))
		}

		sources = append(sources, m.Source{Path: path, Hash: hash})
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	reports, err := w.verifyAll(ctx, sources, args.Threads)
	if err != nil {
		w.logger.Error("failed to verify changed sources", zap.Error(err))

		return
	}

	if err := w.saveReports(args.Reports, reports); err != nil {
		w.logger.Error("failed to save reports", zap.Error(err))
	}
}

// watchDirs lists the directories covering roots. Recursive roots contribute
// every directory below them; file roots contribute their parent.
func (w *workflow) watchDirs(roots []m.Path) ([]string, error) {
	seen := make(map[string]struct{})

	var dirs []string

	add := func(dir string) {
		dir = filepath.Clean(dir)
		if _, ok := seen[dir]; ok {
			return
		}

		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	for _, root := range roots {
		path, recursive := adapter.ParseRootPath(string(root))

		info, err := w.fsAdapter.FileInfo(m.Path(path))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(filepath.Dir(path))

			continue
		}

		if !recursive {
			add(path)

			continue
		}

		err = w.fsAdapter.Walk(m.Path(path), true, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				add(p)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	sort.Strings(dirs)

	return dirs, nil
}

// isVerdictError reports whether err only says that some source did not pass.
func isVerdictError(err error) bool {
	return errors.Is(err, ErrIllFormed) || errors.Is(err, ErrIO)
}
