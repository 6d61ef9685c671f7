package captioner

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

type implOllama struct {
	client    *ollama.Client
	model     string
	maxTokens int
}

// NewOllama creates a Backend talking to an Ollama server with a vision-capable model.
func NewOllama(host, model string, maxTokens int) (Backend, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	return &implOllama{
		client:    ollama.NewClient(u, &http.Client{Timeout: 5 * time.Minute}),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (o *implOllama) Describe(ctx context.Context, imagePath, prompt string) (string, error) {
	data, _, prompt, err := readImage(imagePath, prompt)
	if err != nil {
		return "", err
	}
	return o.generate(ctx, &ollama.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Images: []ollama.ImageData{data},
	})
}

func (o *implOllama) Generate(ctx context.Context, system, user string) (string, error) {
	return o.generate(ctx, &ollama.GenerateRequest{
		Model:  o.model,
		System: system,
		Prompt: user,
	})
}

func (o *implOllama) generate(ctx context.Context, req *ollama.GenerateRequest) (string, error) {
	stream := false
	req.Stream = &stream
	if o.maxTokens > 0 {
		req.Options = map[string]any{"num_predict": o.maxTokens}
	}

	var text strings.Builder
	if err := o.client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		text.WriteString(gr.Response)
		return nil
	}); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return strings.TrimSpace(text.String()), nil
}
