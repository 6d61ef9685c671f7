package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Extract picks the first reader supporting the file extension. Files no reader
// supports get printable-run extraction, which also covers legacy .doc and .xls.
func (e *implExtractor) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	for _, f := range e.formats {
		if !f.Supports(ext) {
			continue
		}
		text, err := f.Extract(ctx, path)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", filepath.Base(path), err)
		}
		return normalize(text), nil
	}

	text, err := e.fallback.Extract(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	return normalize(text), nil
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
