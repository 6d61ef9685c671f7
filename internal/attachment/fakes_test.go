package attachment

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

type captionCall struct {
	path   string
	prompt string
}

type fakeImageCaptioner struct {
	mu    sync.Mutex
	calls []captionCall
	err   error
	delay func(path string) time.Duration
}

func (f *fakeImageCaptioner) Describe(ctx context.Context, imagePath, prompt string) (string, error) {
	if f.delay != nil {
		select {
		case <-time.After(f.delay(imagePath)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, captionCall{path: imagePath, prompt: prompt})
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("caption of %s", filepath.Base(imagePath)), nil
}

type fakeDocumentCaptioner struct {
	mu    sync.Mutex
	calls []captionCall
	err   error
}

func (f *fakeDocumentCaptioner) DescribeInitial(_ context.Context, documentPath, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, captionCall{path: documentPath, prompt: prompt})
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("notes on %s", filepath.Base(documentPath)), nil
}
