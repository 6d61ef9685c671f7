package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/attachdesc/internal/attachment"
	"github.com/nguyentantai21042004/attachdesc/internal/report"
)

// Process describes the attachment, writes its report and archives the input.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()
	name := reportName(path)

	p.logger.Info(ctx, "Starting attachment processing: %s", path)

	extracted, createdDir := p.pendingExtraction(path)

	description, err := p.describer.DescribeAttachment(ctx, path, p.cfg.Watch.Question)
	if err != nil {
		return fmt.Errorf("describe attachment: %w", err)
	}

	written, err := p.writer.Write(report.Report{
		Name:        name,
		Source:      path,
		Question:    p.cfg.Watch.Question,
		Description: description,
		CreatedAt:   startTime,
	})
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if p.cfg.Watch.ArchiveProcessed {
		if err := p.moveToArchived(ctx, path); err != nil {
			p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
		}
		if createdDir {
			if err := p.moveToArchived(ctx, extracted); err != nil {
				p.logger.Warn(ctx, "Failed to move extracted files to archived folder: %v", err)
			}
		}
	}

	p.logger.Info(ctx, "Processed %s in %s -> %v", filepath.Base(path), time.Since(startTime), written)
	return nil
}

// pendingExtraction returns the directory an archive will be expanded into and
// whether this run is the one creating it.
func (p *implProcessor) pendingExtraction(path string) (string, bool) {
	dir, ok := attachment.ExtractionDir(path)
	if !ok {
		return "", false
	}
	_, err := os.Stat(dir)
	return dir, errors.Is(err, fs.ErrNotExist)
}

// reportName is the base name with its attachment extension stripped.
func reportName(path string) string {
	if dir, ok := attachment.ExtractionDir(path); ok {
		return filepath.Base(dir)
	}
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
