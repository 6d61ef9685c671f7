package report

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const sampleDescription = "\n    - Attached image: data/a.png\n     -> Image description: a cat\n\n    - Attached file: data/b.mp3"

func TestMarkdown(t *testing.T) {
	got := Markdown(Report{
		Name:        "data",
		Source:      "data.zip",
		Question:    "What is in it?",
		Description: sampleDescription,
		CreatedAt:   time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	})

	want := "# data\n\n_2026-03-01 09:30_\n\n**Source:** data.zip\n\n**Question:** What is in it?\n\n## Description\n\n" +
		sampleDescription + "\n"
	assert.Equal(t, got, want)
}

func TestMarkdownOmitsEmptyFields(t *testing.T) {
	got := Markdown(Report{Name: "x", Description: "text\n\n"})
	assert.Equal(t, got, "# x\n\n## Description\n\ntext\n")
}

func TestWriteMarkdownOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := New(dir, false).Write(Report{Name: "photo", Description: "desc"})
	assert.NilError(t, err)
	assert.DeepEqual(t, paths, []string{filepath.Join(dir, "photo.md")})

	content, err := os.ReadFile(paths[0])
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(content), "desc"))
}

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()

	paths, err := New(dir, true).Write(Report{Name: "data", Question: "q", Description: sampleDescription})
	assert.NilError(t, err)
	assert.Equal(t, len(paths), 2)
	assert.Equal(t, paths[1], filepath.Join(dir, "data.docx"))

	zr, err := zip.OpenReader(paths[1])
	assert.NilError(t, err)
	defer zr.Close()

	var body string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		assert.NilError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		assert.NilError(t, err)
		body = string(b)
	}
	assert.Check(t, is.Contains(body, "Attached image: data/a.png"))
	assert.Check(t, is.Contains(body, "→ Image description: a cat"))
	assert.Check(t, strings.Count(body, ">data<") == 1, "title written once")
}

func TestDepthPrefix(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"- top", 0},
		{"    - nested", indentPt},
		{"        - deeper", 2 * indentPt},
		{"     -> arrow", indentPt},
	}

	for _, tt := range tests {
		got := len([]rune(depthPrefix(tt.line)))
		if got != tt.want {
			t.Errorf("depthPrefix(%q) = %d runes, want %d", tt.line, got, tt.want)
		}
	}
}
