package captioner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

const documentCaptionRequest = "Now please write a short, 5 sentence caption for this document, that could help someone asking this question: %s\n\nDon't answer the question yourself! Just provide useful notes on the document"

// DescribeInitial gives a first look at a document. Short documents are returned
// verbatim; longer ones are summarised by the text backend with the prompt as guidance.
func (d *implDocument) DescribeInitial(ctx context.Context, documentPath, prompt string) (string, error) {
	switch strings.ToLower(filepath.Ext(documentPath)) {
	case ".png", ".jpg", ".jpeg":
		return "", fmt.Errorf("cannot inspect image %s as text: use the image captioner for images", filepath.Base(documentPath))
	}

	text, err := d.extractor.Extract(ctx, documentPath)
	if err != nil {
		return "", err
	}

	if prompt == "" {
		return text, nil
	}
	if len(text) < d.shortThreshold {
		d.logger.Debug(ctx, "Document %s is short (%d chars), passing content through", documentPath, len(text))
		return "Document content: " + text, nil
	}

	if d.textLimit > 0 && len(text) > d.textLimit {
		text = truncate(text, d.textLimit)
	}

	system := "Here is a file:\n### " + filepath.Base(documentPath) + "\n\n" + text
	caption, err := d.text.Generate(ctx, system, fmt.Sprintf(documentCaptionRequest, prompt))
	if err != nil {
		return "", fmt.Errorf("caption document: %w", err)
	}
	return caption, nil
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if limit >= len(s) {
		return s
	}
	cut := limit
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
