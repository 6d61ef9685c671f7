package attachment

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"golang.org/x/sync/errgroup"
)

type archiveFormat int

const (
	formatZip archiveFormat = iota
	formatTar
	formatTarGz
)

// Longer suffixes first so ".tar.gz" wins over a bare ".gz" lookalike.
var archiveSuffixes = []struct {
	suffix string
	format archiveFormat
}{
	{".tar.gz", formatTarGz},
	{".tgz", formatTarGz},
	{".tar", formatTar},
	{".zip", formatZip},
}

const fragmentIndent = "    "

// IsArchive reports whether path names an archive the expander can unpack.
func IsArchive(path string) bool {
	_, _, ok := archiveKind(path)
	return ok
}

func archiveKind(path string) (archiveFormat, string, bool) {
	lower := strings.ToLower(path)
	base := filepath.Base(path)
	for _, s := range archiveSuffixes {
		// "dir/.zip" has no stem and would expand into dir itself.
		if strings.HasSuffix(lower, s.suffix) && len(base) > len(s.suffix) {
			return s.format, path[len(path)-len(s.suffix):], true
		}
	}
	return 0, "", false
}

// ExtractionDir returns the directory an archive is expanded into: the archive path
// without its archive suffix.
func ExtractionDir(path string) (string, bool) {
	_, suffix, ok := archiveKind(path)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(path, suffix), true
}

// ExpandArchive extracts an archive next to itself and describes every file inside,
// each fragment on a new line and indented by four spaces.
func (d *Describer) ExpandArchive(ctx context.Context, path, question string) (string, error) {
	_, files, err := d.Extract(ctx, path)
	if err != nil {
		return "", err
	}
	return d.DescribeFiles(ctx, files, question)
}

// Extract unpacks the archive into the directory named after it without the archive
// suffix and returns every regular file found there, in lexicographic path order.
// Re-running on an already expanded archive overwrites the previous copy.
func (d *Describer) Extract(ctx context.Context, path string) (string, []string, error) {
	format, _, ok := archiveKind(path)
	if !ok {
		return "", nil, newError(ErrExtraction, path, fmt.Errorf("unsupported archive format"))
	}
	dest, _ := ExtractionDir(path)

	_, statErr := os.Stat(dest)
	created := errors.Is(statErr, fs.ErrNotExist)

	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", nil, newError(ErrExtraction, path, fmt.Errorf("create destination: %w", err))
	}

	if err := unpack(ctx, path, dest, format); err != nil {
		if created {
			if rmErr := os.RemoveAll(dest); rmErr != nil {
				d.logger.Warn(ctx, "Failed to remove partial extraction %s: %v", dest, rmErr)
			}
		}
		return "", nil, newError(ErrExtraction, path, err)
	}

	files, err := walkFiles(ctx, dest)
	if err != nil {
		return "", nil, newError(ErrExtraction, path, fmt.Errorf("walk destination: %w", err))
	}

	d.logger.Info(ctx, "Extracted %s into %s (%d files)", path, dest, len(files))
	return dest, files, nil
}

// DescribeFiles describes each file and concatenates the indented fragments in the given
// order. The first failure aborts the whole description.
func (d *Describer) DescribeFiles(ctx context.Context, files []string, question string) (string, error) {
	fragments := make([]string, len(files))

	if d.workers <= 1 || len(files) <= 1 {
		for i, f := range files {
			fragment, err := d.DescribeFile(ctx, f, question)
			if err != nil {
				return "", err
			}
			fragments[i] = fragment
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.workers)
		for i, f := range files {
			g.Go(func() error {
				fragment, err := d.DescribeFile(gctx, f, question)
				if err != nil {
					return err
				}
				fragments[i] = fragment
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	for _, fragment := range fragments {
		b.WriteString("\n")
		b.WriteString(indent(fragment, fragmentIndent))
	}
	return b.String(), nil
}

// indent prefixes every line holding non-whitespace text; blank lines are left alone.
func indent(text, prefix string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}

func walkFiles(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func unpack(ctx context.Context, archivePath, dest string, format archiveFormat) error {
	switch format {
	case formatZip:
		return unpackZip(ctx, archivePath, dest)
	case formatTar, formatTarGz:
		f, err := os.Open(archivePath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer f.Close()

		var r io.Reader = f
		if format == formatTarGz {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return fmt.Errorf("open gzip stream: %w", err)
			}
			defer gz.Close()
			r = gz
		}
		return unpackTar(ctx, r, dest)
	default:
		return fmt.Errorf("unsupported archive format")
	}
}

func unpackZip(ctx context.Context, archivePath, dest string) error {
	// Insecure entry names are still confined to dest by SecureJoin below.
	zr, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := securejoin.SecureJoin(dest, entry.Name)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", entry.Name, err)
		}

		mode := entry.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", entry.Name, err)
			}
		case mode.IsRegular():
			rc, err := entry.Open()
			if err != nil {
				return fmt.Errorf("open entry %s: %w", entry.Name, err)
			}
			err = writeFile(target, rc, mode.Perm())
			rc.Close()
			if err != nil {
				return fmt.Errorf("extract %s: %w", entry.Name, err)
			}
		}
		// Symlinks and device entries are not extracted.
	}
	return nil
}

func unpackTar(ctx context.Context, r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return fmt.Errorf("read tar header: %w", err)
		}

		target, err := securejoin.SecureJoin(dest, hdr.Name)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", hdr.Name, err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, fs.FileMode(hdr.Mode).Perm()); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
		}
	}
}

func writeFile(target string, r io.Reader, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	// Owner write is kept so a second expansion can overwrite the file.
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm|0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
