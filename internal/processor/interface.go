package processor

import "context"

// Processor handles one attachment dropped into the input directory.
type Processor interface {
	Process(ctx context.Context, path string) error
}

// Describer produces the description of an attachment.
type Describer interface {
	DescribeAttachment(ctx context.Context, path, question string) (string, error)
}
