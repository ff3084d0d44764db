package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/flatroutes/pkg/scanner"
	"github.com/fsnotify/fsnotify"
)

// debounceDuration batches bursts of file events (editors, git checkouts)
// into one rebuild.
const debounceDuration = 300 * time.Millisecond

// watchTree watches dir recursively and calls onChange once per burst of
// create, write, remove or rename events. It blocks until ctx is done.
// onChange runs on a single goroutine, so calls never overlap; bursts that
// arrive while it runs collapse into one more call.
func watchTree(ctx context.Context, dir string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := addTree(watcher, dir); err != nil {
		return err
	}

	pending := make(chan struct{}, 1)
	stop := make(chan struct{})
	var worker sync.WaitGroup
	worker.Add(1)
	go func() {
		defer worker.Done()
		for {
			select {
			case <-stop:
				return
			case <-pending:
				onChange()
			}
		}
	}()
	defer func() {
		close(stop)
		worker.Wait()
	}()

	trigger := func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	}

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	defer func() {
		mu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only react to create, write, remove and rename events
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addTree(watcher, event.Name)
				}
			}

			slog.Debug("file event", "op", event.Op.String(), "file", event.Name)

			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, trigger)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

// addTree adds dir and every non-skipped subdirectory to the watcher.
func addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && scanner.IsSkippedFolder(info.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
