package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"
)

type docxExtractor struct{}

func (docxExtractor) Supports(ext string) bool {
	return ext == "docx"
}

// Extract returns one line per paragraph of word/document.xml.
func (docxExtractor) Extract(_ context.Context, p string) (string, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	f := findEntry(zr, "word/document.xml")
	if f == nil {
		return "", fmt.Errorf("word/document.xml not found")
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var b strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

type xlsxExtractor struct{}

func (xlsxExtractor) Supports(ext string) bool {
	return ext == "xlsx"
}

// Extract returns every worksheet as tab-separated rows under a "Sheet: <name>" header.
func (xlsxExtractor) Extract(ctx context.Context, p string) (string, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	var shared []string
	if f := findEntry(zr, "xl/sharedStrings.xml"); f != nil {
		if shared, err = readSharedStrings(f); err != nil {
			return "", fmt.Errorf("shared strings: %w", err)
		}
	}

	var sheets []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/") && strings.HasSuffix(f.Name, ".xml") {
			sheets = append(sheets, f)
		}
	}
	sort.Slice(sheets, func(i, j int) bool {
		ni, nj := sheetNumber(sheets[i].Name), sheetNumber(sheets[j].Name)
		if ni != nj {
			return ni < nj
		}
		return sheets[i].Name < sheets[j].Name
	})

	var out []string
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rows, err := readSheet(sheet, shared)
		if err != nil {
			return "", fmt.Errorf("%s: %w", sheet.Name, err)
		}
		name := strings.TrimSuffix(path.Base(sheet.Name), ".xml")
		out = append(out, "Sheet: "+name+"\n"+strings.Join(rows, "\n"))
	}
	return strings.Join(out, "\n\n"), nil
}

// sheetNumber returns the trailing number of "xl/worksheets/sheetN.xml", so sheet10
// sorts after sheet2. Names without one sort last.
func sheetNumber(name string) int {
	stem := strings.TrimSuffix(path.Base(name), ".xml")
	i := len(stem)
	for i > 0 && stem[i-1] >= '0' && stem[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(stem[i:])
	if err != nil {
		return math.MaxInt
	}
	return n
}

func readSharedStrings(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var shared []string
	var cur strings.Builder
	inText := false
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return shared, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				cur.Reset()
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "si":
				shared = append(shared, cur.String())
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
}

func readSheet(f *zip.File, shared []string) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var (
		rows     []string
		cells    []string
		cellType string
		value    strings.Builder
		inValue  bool
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				cells = cells[:0]
			case "c":
				cellType = ""
				value.Reset()
				for _, a := range t.Attr {
					if a.Name.Local == "t" {
						cellType = a.Value
					}
				}
			case "v", "t":
				inValue = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v", "t":
				inValue = false
			case "c":
				cells = append(cells, cellText(cellType, value.String(), shared))
			case "row":
				if line := strings.TrimRight(strings.Join(cells, "\t"), "\t"); line != "" {
					rows = append(rows, line)
				}
			}
		case xml.CharData:
			if inValue {
				value.Write(t)
			}
		}
	}
}

func cellText(cellType, raw string, shared []string) string {
	if cellType != "s" {
		return raw
	}
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || i < 0 || i >= len(shared) {
		return raw
	}
	return shared[i]
}

func findEntry(zr *zip.ReadCloser, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
