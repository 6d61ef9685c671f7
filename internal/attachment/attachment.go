package attachment

import (
	"context"
	"fmt"
	"os"
)

// DescribeAttachment describes a file, or every file inside it when it is an archive.
// The path must name a readable file; anything else is an ErrUnreadablePath error.
func (d *Describer) DescribeAttachment(ctx context.Context, path, question string) (string, error) {
	if err := checkReadable(path); err != nil {
		return "", newError(ErrUnreadablePath, path, err)
	}

	if IsArchive(path) {
		d.logger.Info(ctx, "Expanding archive attachment: %s", path)
		return d.ExpandArchive(ctx, path, question)
	}
	return d.DescribeFile(ctx, path, question)
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("is a directory")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
