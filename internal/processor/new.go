package processor

import (
	"github.com/nguyentantai21042004/attachdesc/internal/config"
	"github.com/nguyentantai21042004/attachdesc/internal/logger"
	"github.com/nguyentantai21042004/attachdesc/internal/report"
)

type implProcessor struct {
	cfg       *config.Config
	describer Describer
	writer    report.Writer
	logger    logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, describer Describer, writer report.Writer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:       cfg,
		describer: describer,
		writer:    writer,
		logger:    log,
	}
}
