// Package watch reruns a refresh callback when media files change in a set
// of folders.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bagtoad/pix/internal/media"
)

// Debounce is the quiet period after the last qualifying event before
// refresh runs.
const Debounce = 500 * time.Millisecond

// Run watches dirs (non-recursively) and calls refresh after media files
// are created, written, renamed or removed. Missing dirs are skipped.
// refresh runs on the calling goroutine; its errors are logged. Run returns
// nil when ctx is done.
func Run(ctx context.Context, dirs []string, refresh func(context.Context) error) error {
	return run(ctx, dirs, Debounce, refresh)
}

func run(ctx context.Context, dirs []string, debounce time.Duration, refresh func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer w.Close()

	watched := 0
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			log.Printf("Warning: not watching %s: missing or not a directory", dir)
			continue
		}
		if err := w.Add(dir); err != nil {
			log.Printf("Warning: not watching %s: %v", dir, err)
			continue
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("no folders to watch")
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			if err := refresh(ctx); err != nil {
				log.Printf("Warning: refresh failed: %v", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("Warning: watch error: %v", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	_, ok := media.KindOf(name)
	return ok
}
