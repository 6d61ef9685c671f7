package extract

import (
	"context"
	"os"
	"strings"
)

type plainExtractor struct{}

func (plainExtractor) Supports(ext string) bool {
	switch ext {
	case "xml", "txt", "md", "csv", "json", "yaml", "yml", "html", "htm":
		return true
	}
	return false
}

func (plainExtractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// printableExtractor keeps runs of printable ASCII, like strings(1). NUL bytes do not
// break a run, so UTF-16LE text from legacy Office files survives.
type printableExtractor struct {
	minRun int
}

func (printableExtractor) Supports(string) bool {
	return true
}

func (e printableExtractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var (
		runs []string
		cur  strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); len(s) >= e.minRun {
			runs = append(runs, s)
		}
		cur.Reset()
	}
	for _, c := range data {
		switch {
		case c == 0:
		case c == '\t' || (c >= 0x20 && c < 0x7f):
			cur.WriteByte(c)
		default:
			flush()
		}
	}
	flush()
	return strings.Join(runs, "\n"), nil
}
