package attachment

import (
	"github.com/nguyentantai21042004/attachdesc/internal/logger"
)

// Describer produces LLM-ready descriptions of attachments. It holds no per-call state,
// so one Describer may serve concurrent calls on unrelated attachments.
type Describer struct {
	image    ImageCaptioner
	document DocumentCaptioner
	logger   logger.Logger
	workers  int
}

// Option configures a Describer.
type Option func(*Describer)

// WithLogger sets the logger used for progress output.
func WithLogger(l logger.Logger) Option {
	return func(d *Describer) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithWorkers sets how many files of one archive may be captioned at the same time.
// Output order does not depend on this value.
func WithWorkers(n int) Option {
	return func(d *Describer) {
		if n > 0 {
			d.workers = n
		}
	}
}

// New creates a Describer that captions through the given capabilities.
func New(image ImageCaptioner, document DocumentCaptioner, opts ...Option) *Describer {
	d := &Describer{
		image:    image,
		document: document,
		logger:   logger.Nop(),
		workers:  1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
