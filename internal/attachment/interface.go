package attachment

import "context"

// ImageCaptioner turns an image file and a prompt into a caption.
type ImageCaptioner interface {
	Describe(ctx context.Context, imagePath, prompt string) (string, error)
}

// DocumentCaptioner captions a document in its initial-exam mode: a first look at the
// file guided by the prompt, before any follow-up questions.
type DocumentCaptioner interface {
	DescribeInitial(ctx context.Context, documentPath, prompt string) (string, error)
}
