package attachment

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	assert.NilError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		assert.NilError(t, err)
		_, err = w.Write([]byte(body))
		assert.NilError(t, err)
	}
	assert.NilError(t, zw.Close())
	assert.NilError(t, f.Close())
}

func writeTarGz(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	writeTar(t, path, entries, true)
}

func writeTar(t *testing.T, path string, entries map[string]string, gzipped bool) {
	t.Helper()
	f, err := os.Create(path)
	assert.NilError(t, err)
	var w io.Writer = f
	var gz *gzip.Writer
	if gzipped {
		gz = gzip.NewWriter(f)
		w = gz
	}
	tw := tar.NewWriter(w)
	for name, body := range entries {
		assert.NilError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		assert.NilError(t, err)
	}
	assert.NilError(t, tw.Close())
	if gz != nil {
		assert.NilError(t, gz.Close())
	}
	assert.NilError(t, f.Close())
}

func TestExpandArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "data.zip")
	writeZip(t, archive, map[string]string{
		"notes.txt": "hello",
		"a.png":     "png-bytes",
	})

	img := &fakeImageCaptioner{}
	d := New(img, &fakeDocumentCaptioner{})

	got, err := d.DescribeAttachment(context.Background(), archive, "Q")
	assert.NilError(t, err)

	root := filepath.Join(dir, "data")
	want := "\n    - Attached image: " + filepath.Join(root, "a.png") +
		"\n         -> Image description: caption of a.png" +
		"\n    - Attached file: " + filepath.Join(root, "notes.txt")
	assert.Equal(t, got, want)
	assert.Assert(t, is.Len(img.calls, 1))
	assert.Assert(t, is.Contains(img.calls[0].prompt, "Q. But do not try"))
}

func TestExpandArchiveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "bundle.zip")
	writeZip(t, archive, map[string]string{
		"docs/report.pdf": "%PDF",
		"docs/clip.mp3":   "id3",
		"readme.md":       "# hi",
	})

	d := New(&fakeImageCaptioner{}, &fakeDocumentCaptioner{})

	first, err := d.DescribeAttachment(context.Background(), archive, "Q")
	assert.NilError(t, err)
	second, err := d.DescribeAttachment(context.Background(), archive, "Q")
	assert.NilError(t, err)
	assert.Equal(t, first, second)

	root := filepath.Join(dir, "bundle")
	want := "\n    - Attached audio: " + filepath.Join(root, "docs", "clip.mp3") +
		"\n    - Attached document: " + filepath.Join(root, "docs", "report.pdf") +
		"\n         -> File description: notes on report.pdf" +
		"\n    - Attached file: " + filepath.Join(root, "readme.md")
	assert.Equal(t, first, want)
}

func TestExpandArchiveCorrupt(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "broken.zip")
	assert.NilError(t, os.WriteFile(archive, []byte("definitely not a zip"), 0644))

	img := &fakeImageCaptioner{}
	d := New(img, &fakeDocumentCaptioner{})

	got, err := d.DescribeAttachment(context.Background(), archive, "Q")
	assert.Equal(t, got, "")
	assert.Assert(t, errors.Is(err, ErrExtraction))

	var aerr *Error
	assert.Assert(t, errors.As(err, &aerr))
	assert.Equal(t, aerr.Path, archive)

	_, statErr := os.Stat(filepath.Join(dir, "broken"))
	assert.Assert(t, errors.Is(statErr, os.ErrNotExist))
	assert.Assert(t, is.Len(img.calls, 0))
}

func TestExpandArchiveKeepsExistingDestinationOnFailure(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "broken.zip")
	assert.NilError(t, os.WriteFile(archive, []byte("garbage"), 0644))
	keep := filepath.Join(dir, "broken", "keep.txt")
	touch(t, keep)

	d := New(&fakeImageCaptioner{}, &fakeDocumentCaptioner{})
	_, err := d.DescribeAttachment(context.Background(), archive, "Q")
	assert.Assert(t, errors.Is(err, ErrExtraction))

	_, statErr := os.Stat(keep)
	assert.NilError(t, statErr)
}

func TestExpandArchiveCaptionFailureAborts(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pics.zip")
	writeZip(t, archive, map[string]string{
		"a.png":   "1",
		"b.txt":   "2",
		"c.jpg":   "3",
		"d.audio": "4",
	})

	d := New(&fakeImageCaptioner{err: errors.New("quota")}, &fakeDocumentCaptioner{})
	got, err := d.DescribeAttachment(context.Background(), archive, "Q")
	assert.Equal(t, got, "")
	assert.Assert(t, errors.Is(err, ErrCaptionBackend))
}

func TestExpandArchiveDoesNotRecurse(t *testing.T) {
	dir := t.TempDir()
	inner := filepath.Join(dir, "inner.zip")
	writeZip(t, inner, map[string]string{"deep.png": "x"})
	innerBytes, err := os.ReadFile(inner)
	assert.NilError(t, err)

	outer := filepath.Join(dir, "outer.zip")
	writeZip(t, outer, map[string]string{"inner.zip": string(innerBytes)})

	img := &fakeImageCaptioner{}
	d := New(img, &fakeDocumentCaptioner{})
	got, err := d.DescribeAttachment(context.Background(), outer, "Q")
	assert.NilError(t, err)
	assert.Equal(t, got, "\n    - Attached file: "+filepath.Join(dir, "outer", "inner.zip"))
	assert.Assert(t, is.Len(img.calls, 0))

	_, statErr := os.Stat(filepath.Join(dir, "outer", "inner"))
	assert.Assert(t, errors.Is(statErr, os.ErrNotExist))
}

func TestExtractConfinesEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "sub", "evil.zip")
	assert.NilError(t, os.MkdirAll(filepath.Dir(archive), 0755))
	writeZip(t, archive, map[string]string{"../../escaped.txt": "gotcha"})

	d := New(&fakeImageCaptioner{}, &fakeDocumentCaptioner{})
	dest, files, err := d.Extract(context.Background(), archive)
	assert.NilError(t, err)
	assert.Equal(t, dest, filepath.Join(dir, "sub", "evil"))
	assert.DeepEqual(t, files, []string{filepath.Join(dest, "escaped.txt")})

	_, statErr := os.Stat(filepath.Join(dir, "escaped.txt"))
	assert.Assert(t, errors.Is(statErr, os.ErrNotExist))
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "logs.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"b/second.wav": "2",
		"a/first.txt":  "1",
	})

	d := New(&fakeImageCaptioner{}, &fakeDocumentCaptioner{})
	dest, files, err := d.Extract(context.Background(), archive)
	assert.NilError(t, err)
	assert.Equal(t, dest, filepath.Join(dir, "logs"))
	assert.DeepEqual(t, files, []string{
		filepath.Join(dest, "a", "first.txt"),
		filepath.Join(dest, "b", "second.wav"),
	})

	body, err := os.ReadFile(files[0])
	assert.NilError(t, err)
	assert.Equal(t, string(body), "1")
}

func TestExpandPlainTar(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "scans.TAR")
	writeTar(t, archive, map[string]string{
		"page.png":  "png-bytes",
		"notes.mp3": "id3",
	}, false)

	img := &fakeImageCaptioner{}
	got, err := New(img, &fakeDocumentCaptioner{}).DescribeAttachment(context.Background(), archive, "Q")
	assert.NilError(t, err)

	root := filepath.Join(dir, "scans")
	want := "\n    - Attached audio: " + filepath.Join(root, "notes.mp3") +
		"\n    - Attached image: " + filepath.Join(root, "page.png") +
		"\n         -> Image description: caption of page.png"
	assert.Equal(t, got, want)
}

func TestExpandArchiveWithoutStem(t *testing.T) {
	inbox := filepath.Join(t.TempDir(), "inbox")
	assert.NilError(t, os.Mkdir(inbox, 0755))
	archive := filepath.Join(inbox, ".zip")
	writeZip(t, archive, map[string]string{"inside.txt": "x"})
	assert.NilError(t, os.WriteFile(filepath.Join(inbox, "unrelated.png"), []byte("png"), 0644))

	img := &fakeImageCaptioner{}
	got, err := New(img, &fakeDocumentCaptioner{}).DescribeAttachment(context.Background(), archive, "Q")
	assert.NilError(t, err)
	assert.Equal(t, got, " - Attached file: "+archive)
	assert.Assert(t, is.Len(img.calls, 0))

	_, err = os.Stat(filepath.Join(inbox, "inside.txt"))
	assert.Assert(t, os.IsNotExist(err))
}

func TestExtractUnsupported(t *testing.T) {
	d := New(&fakeImageCaptioner{}, &fakeDocumentCaptioner{})
	_, _, err := d.Extract(context.Background(), "report.pdf")
	assert.Assert(t, errors.Is(err, ErrExtraction))
}

func TestDescribeFilesSyntheticList(t *testing.T) {
	d := New(&fakeImageCaptioner{}, &fakeDocumentCaptioner{})
	got, err := d.DescribeFiles(context.Background(), []string{"x/one.mp3", "x/two.bin"}, "Q")
	assert.NilError(t, err)
	assert.Equal(t, got, "\n    - Attached audio: x/one.mp3\n    - Attached file: x/two.bin")

	empty, err := d.DescribeFiles(context.Background(), nil, "Q")
	assert.NilError(t, err)
	assert.Equal(t, empty, "")
}

func TestDescribeFilesParallelKeepsOrder(t *testing.T) {
	files := []string{"p/1.png", "p/2.png", "p/3.png", "p/4.png"}
	img := &fakeImageCaptioner{
		// Earlier files finish last.
		delay: func(path string) time.Duration {
			switch filepath.Base(path) {
			case "1.png":
				return 40 * time.Millisecond
			case "2.png":
				return 20 * time.Millisecond
			default:
				return 0
			}
		},
	}

	sequential, err := New(&fakeImageCaptioner{}, nil).DescribeFiles(context.Background(), files, "Q")
	assert.NilError(t, err)

	parallel, err := New(img, nil, WithWorkers(4)).DescribeFiles(context.Background(), files, "Q")
	assert.NilError(t, err)
	assert.Equal(t, parallel, sequential)
	assert.Assert(t, is.Len(img.calls, 4))
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single line", " - Attached file: a", "    - Attached file: a"},
		{"two lines", "a\nb", "    a\n    b"},
		{"blank line kept bare", "a\n\n  \nb", "    a\n\n  \n    b"},
		{"trailing newline", "a\n", "    a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, indent(tt.in, "    "), tt.want)
		})
	}
}
