package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/attachdesc/internal/attachment"
	"github.com/nguyentantai21042004/attachdesc/internal/captioner"
	"github.com/nguyentantai21042004/attachdesc/internal/config"
	"github.com/nguyentantai21042004/attachdesc/internal/extract"
	"github.com/nguyentantai21042004/attachdesc/internal/logger"
	"github.com/nguyentantai21042004/attachdesc/pkg/executor"
)

// loadConfig reads --config, falling back to defaults when the file does not exist.
// The returned warning is logged once the logger is configured.
func loadConfig() (*config.Config, string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", err
		}
		cfg = config.Defaults()
		return applyOverrides(cfg), "config " + configPath + " not found, using defaults", nil
	}
	return applyOverrides(cfg), "", nil
}

func applyOverrides(cfg *config.Config) *config.Config {
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg
}

// newDescriber wires the configured caption backend, extractors and the core describer.
func newDescriber(cfg *config.Config, log logger.Logger) (*attachment.Describer, error) {
	backend, err := captioner.New(cfg, log)
	if err != nil {
		return nil, err
	}
	extractor := extract.New(executor.New(), cfg.Document.Converters)
	document := captioner.NewDocument(extractor, backend, cfg.Document, log)

	return attachment.New(backend, document,
		attachment.WithLogger(log),
		attachment.WithWorkers(cfg.Archive.Workers),
	), nil
}

func setup(ctx context.Context) (*config.Config, logger.Logger, error) {
	cfg, warning, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if warning != "" {
		log.Warn(ctx, "%s", warning)
	}
	return cfg, log, nil
}
