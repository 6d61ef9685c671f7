package attachment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DescribeFile produces the description fragment for a single, non-archive file.
// Audio and unknown files are reported by path only. Captioner failures are returned
// as ErrCaptionBackend errors and never swallowed.
func (d *Describer) DescribeFile(ctx context.Context, path, question string) (string, error) {
	class := Classify(path)
	d.logger.Debug(ctx, "Describing %s as %s", path, class)

	switch class {
	case ClassImage:
		caption, err := d.captionImage(ctx, path, question)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(" - Attached image: %s\n     -> Image description: %s", path, caption), nil

	case ClassDocument:
		reported := path
		var caption string
		var err error
		if png, ok := renderedPage(path); ok {
			d.logger.Debug(ctx, "Using pre-rendered page %s for %s", png, path)
			reported = png
			caption, err = d.captionImage(ctx, png, question)
		} else {
			caption, err = d.captionDocument(ctx, path, question)
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(" - Attached document: %s\n     -> File description: %s", reported, caption), nil

	case ClassAudio:
		return fmt.Sprintf(" - Attached audio: %s", path), nil

	default:
		return fmt.Sprintf(" - Attached file: %s", path), nil
	}
}

func (d *Describer) captionImage(ctx context.Context, path, question string) (string, error) {
	if d.image == nil {
		return "", newError(ErrCaptionBackend, path, fmt.Errorf("no image captioner configured"))
	}
	caption, err := d.image.Describe(ctx, path, ImagePrompt(question))
	if err != nil {
		return "", newError(ErrCaptionBackend, path, err)
	}
	return caption, nil
}

func (d *Describer) captionDocument(ctx context.Context, path, question string) (string, error) {
	if d.document == nil {
		return "", newError(ErrCaptionBackend, path, fmt.Errorf("no document captioner configured"))
	}
	caption, err := d.document.DescribeInitial(ctx, path, DocumentPrompt(question))
	if err != nil {
		return "", newError(ErrCaptionBackend, path, err)
	}
	return caption, nil
}

// renderedPage returns the sibling "<name>.png" of a document when it exists.
func renderedPage(path string) (string, bool) {
	png := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	info, err := os.Stat(png)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return png, true
}
