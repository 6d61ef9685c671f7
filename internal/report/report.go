package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (w *implWriter) Write(r Report) ([]string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	md := Markdown(r)
	mdPath := filepath.Join(w.outputDir, r.Name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return nil, fmt.Errorf("write markdown: %w", err)
	}
	written := []string{mdPath}

	if w.writeDocx {
		docxPath := filepath.Join(w.outputDir, r.Name+".docx")
		if err := markdownToDocx(r.Name, md, docxPath); err != nil {
			return written, fmt.Errorf("write docx: %w", err)
		}
		written = append(written, docxPath)
	}

	return written, nil
}

// Markdown renders a report. The description is kept verbatim so fragment
// indentation survives.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Name)
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "_%s_\n\n", r.CreatedAt.Format("2006-01-02 15:04"))
	}
	if r.Source != "" {
		fmt.Fprintf(&b, "**Source:** %s\n\n", r.Source)
	}
	if r.Question != "" {
		fmt.Fprintf(&b, "**Question:** %s\n\n", r.Question)
	}
	b.WriteString("## Description\n\n")
	b.WriteString(strings.TrimRight(r.Description, "\n"))
	b.WriteString("\n")
	return b.String()
}
