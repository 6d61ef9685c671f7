package captioner

import (
	"fmt"

	"github.com/nguyentantai21042004/attachdesc/internal/attachment"
	"github.com/nguyentantai21042004/attachdesc/internal/config"
	"github.com/nguyentantai21042004/attachdesc/internal/extract"
	"github.com/nguyentantai21042004/attachdesc/internal/logger"
)

// New creates the Backend selected by cfg.Captioner.Provider.
func New(cfg *config.Config, log logger.Logger) (Backend, error) {
	switch cfg.Captioner.Provider {
	case "gemini":
		if err := cfg.RequireGeminiKeys(); err != nil {
			return nil, err
		}
		return NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log), nil
	case "openai":
		return NewOpenAI(cfg.OpenAI.APIBase, cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Captioner.MaxTokens), nil
	case "ollama":
		return NewOllama(cfg.Ollama.Host, cfg.Ollama.Model, cfg.Captioner.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown captioner provider: %s", cfg.Captioner.Provider)
	}
}

type implDocument struct {
	extractor      extract.Extractor
	text           TextGenerator
	textLimit      int
	shortThreshold int
	logger         logger.Logger
}

// NewDocument creates a DocumentCaptioner that reads documents through extractor and
// asks text for a caption once the content is too long to pass through verbatim.
func NewDocument(extractor extract.Extractor, text TextGenerator, cfg config.DocumentConfig, log logger.Logger) attachment.DocumentCaptioner {
	return &implDocument{
		extractor:      extractor,
		text:           text,
		textLimit:      cfg.TextLimit,
		shortThreshold: cfg.ShortTextThreshold,
		logger:         log,
	}
}
