package attachment

import (
	"path/filepath"
	"strings"
)

// Class is the kind of attachment a file is described as.
type Class int

const (
	ClassOther Class = iota
	ClassImage
	ClassDocument
	ClassAudio
)

func (c Class) String() string {
	switch c {
	case ClassImage:
		return "image"
	case ClassDocument:
		return "document"
	case ClassAudio:
		return "audio"
	default:
		return "other"
	}
}

var classByExtension = map[string]Class{
	"png":  ClassImage,
	"jpg":  ClassImage,
	"jpeg": ClassImage,
	"pdf":  ClassDocument,
	"xls":  ClassDocument,
	"xlsx": ClassDocument,
	"docx": ClassDocument,
	"doc":  ClassDocument,
	"xml":  ClassDocument,
	"mp3":  ClassAudio,
	"m4a":  ClassAudio,
	"wav":  ClassAudio,
}

// Classify maps a path to its Class using the text after the last dot of the file name.
// Matching ignores case, so "Report.PDF" is a document.
func Classify(path string) Class {
	return classByExtension[Extension(path)]
}

// Extension returns the lower-cased text after the last dot of the file name,
// or "" when the name has no dot.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}
