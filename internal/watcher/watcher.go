package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/attachdesc/internal/logger"
)

// Suffixes browsers and copy tools use while a file is still being written.
var partialSuffixes = []string{".part", ".crdownload", ".tmp", ".download"}

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settleDelay   time.Duration
	wg            sync.WaitGroup
}

// Start monitors the input directory and hands every new attachment to the handler,
// at most maxConcurrent at a time.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}

			// Small delay to ensure file is fully written
			if w.settleDelay > 0 {
				time.Sleep(w.settleDelay)
			}

			if ok, reason := isAttachment(event.Name); !ok {
				w.logger.Debug(ctx, "Ignoring %s: %s", event.Name, reason)
				continue
			}
			w.logger.Info(ctx, "New attachment detected: %s", event.Name)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isAttachment accepts visible regular files that are not still being downloaded.
func isAttachment(path string) (bool, string) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false, "hidden file"
	}
	lower := strings.ToLower(base)
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return false, "partial download"
		}
	}

	info, err := os.Lstat(path)
	if err != nil {
		return false, "vanished"
	}
	if !info.Mode().IsRegular() {
		return false, "not a regular file"
	}
	return true, ""
}
