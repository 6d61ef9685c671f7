package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Captioner   CaptionerConfig   `yaml:"captioner"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Ollama      OllamaConfig      `yaml:"ollama"`
	Document    DocumentConfig    `yaml:"document"`
	Archive     ArchiveConfig     `yaml:"archive"`
	Paths       PathsConfig       `yaml:"paths"`
	Watch       WatchConfig       `yaml:"watch"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

// CaptionerConfig selects the backend used for both image captions and document notes.
type CaptionerConfig struct {
	Provider  string `yaml:"provider"` // gemini | openai | ollama
	MaxTokens int    `yaml:"max_tokens"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type OpenAIConfig struct {
	APIBase string `yaml:"api_base"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

type OllamaConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

type DocumentConfig struct {
	TextLimit          int               `yaml:"text_limit"`
	ShortTextThreshold int               `yaml:"short_text_threshold"`
	Converters         map[string]string `yaml:"converters"` // extension -> command printing text to stdout
}

type ArchiveConfig struct {
	Workers int `yaml:"workers"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type WatchConfig struct {
	Question         string `yaml:"question"`
	WriteDocx        bool   `yaml:"write_docx"`
	ArchiveProcessed bool   `yaml:"archive_processed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads a YAML config file, applies environment fallbacks and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Defaults returns a validated config for running without a config file.
func Defaults() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	// Validate only fills defaults on an empty config.
	_ = cfg.Validate()
	return cfg
}

func (c *Config) applyEnv() {
	if len(c.Gemini.APIKeys) == 0 {
		for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
			if key := os.Getenv(name); key != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, key)
			}
		}
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Ollama.Host == "" {
		c.Ollama.Host = os.Getenv("OLLAMA_HOST")
	}
}

func (c *Config) Validate() error {
	c.Captioner.Provider = strings.ToLower(strings.TrimSpace(c.Captioner.Provider))
	if c.Captioner.Provider == "" {
		c.Captioner.Provider = "openai"
	}
	switch c.Captioner.Provider {
	case "gemini", "openai", "ollama":
	default:
		return fmt.Errorf("captioner.provider %q is not one of gemini, openai, ollama", c.Captioner.Provider)
	}
	if c.Captioner.MaxTokens < 0 {
		return fmt.Errorf("captioner.max_tokens must not be negative")
	}
	if c.Document.TextLimit < 0 || c.Document.ShortTextThreshold < 0 {
		return fmt.Errorf("document limits must not be negative")
	}
	if c.Archive.Workers < 0 {
		return fmt.Errorf("archive.workers must not be negative")
	}

	if c.Captioner.MaxTokens == 0 {
		c.Captioner.MaxTokens = 1000
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.APIBase == "" {
		c.OpenAI.APIBase = "http://localhost:11434/v1"
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = "api-key"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o"
	}
	if c.Ollama.Host == "" {
		c.Ollama.Host = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "llava"
	}
	if c.Document.TextLimit == 0 {
		c.Document.TextLimit = 100000
	}
	if c.Document.ShortTextThreshold == 0 {
		c.Document.ShortTextThreshold = 4000
	}
	if c.Archive.Workers == 0 {
		c.Archive.Workers = 1
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Watch.Question == "" {
		c.Watch.Question = "Describe the attachment."
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

// RequireGeminiKeys reports a missing key early instead of on the first caption call.
func (c *Config) RequireGeminiKeys() error {
	if c.Captioner.Provider == "gemini" && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required (or set GEMINI_API_KEY)")
	}
	return nil
}
