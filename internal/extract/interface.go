package extract

import "context"

// Extractor turns a document file into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// formatExtractor handles the file extensions it Supports.
type formatExtractor interface {
	Supports(ext string) bool
	Extract(ctx context.Context, path string) (string, error)
}
