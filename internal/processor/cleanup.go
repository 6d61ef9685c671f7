package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// moveToArchived moves a processed file or directory into the archived folder,
// suffixing the name with a timestamp if it is already taken.
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))
	if _, err := os.Lstat(destPath); err == nil {
		destPath = timestamped(destPath, time.Now())
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat archived path: %w", err)
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, destPath)

	if err := os.Rename(path, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}

// timestamped inserts a timestamp before the extension of path.
func timestamped(path string, now time.Time) string {
	dir, base := filepath.Split(path)
	ext := ""
	if i := strings.Index(base, "."); i > 0 {
		base, ext = base[:i], base[i:]
	}
	return filepath.Join(dir, base+"-"+now.Format("20060102-150405")+ext)
}
