package report

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 12
	indentPt = 4
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItem    = regexp.MustCompile(`^-\s+(.+)$`)
	reArrow   = regexp.MustCompile(`^->\s*(.+)$`)
)

// markdownToDocx renders report markdown to docx. Nested archive members keep
// their depth as leading non-breaking spaces.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			if len(m[1]) == 1 {
				// title already written
				continue
			}
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		prefix := depthPrefix(line)
		switch {
		case reItem.MatchString(trimmed):
			m := reItem.FindStringSubmatch(trimmed)
			addRichText(doc.AddParagraph(""), prefix+"• "+m[1])
		case reArrow.MatchString(trimmed):
			m := reArrow.FindStringSubmatch(trimmed)
			addRichText(doc.AddParagraph(""), prefix+"    → "+m[1])
		default:
			addRichText(doc.AddParagraph(""), prefix+trimmed)
		}
	}

	return doc.SaveTo(outputPath)
}

// depthPrefix maps each 4-space indentation level of an archive member to a
// fixed run of non-breaking spaces.
func depthPrefix(line string) string {
	spaces := len(line) - len(strings.TrimLeft(line, " "))
	depth := spaces / 4
	if depth == 0 {
		return ""
	}
	return strings.Repeat("\u00a0", depth*indentPt)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
