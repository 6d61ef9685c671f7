package captioner

import (
	"context"

	"github.com/nguyentantai21042004/attachdesc/internal/attachment"
)

// TextGenerator answers a text-only request made of a system and a user message.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Backend is a model provider able to caption images and generate text.
type Backend interface {
	attachment.ImageCaptioner
	TextGenerator
}
