package captioner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultImagePrompt = "Please write a detailed caption for this image."

func imageMIME(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png", nil
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".webp":
		return "image/webp", nil
	case ".gif":
		return "image/gif", nil
	default:
		return "", fmt.Errorf("unsupported image type: %s", filepath.Base(path))
	}
}

// readImage loads an image with its MIME type and fills in the default prompt.
func readImage(path, prompt string) ([]byte, string, string, error) {
	mime, err := imageMIME(path)
	if err != nil {
		return nil, "", "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("read image: %w", err)
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = defaultImagePrompt
	}
	return data, mime, prompt, nil
}
