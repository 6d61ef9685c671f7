package extract

import (
	"strings"

	"github.com/nguyentantai21042004/attachdesc/pkg/executor"
)

type implExtractor struct {
	formats  []formatExtractor
	fallback formatExtractor
}

// New creates an Extractor. converters maps an extension (without dot) to a command
// that prints the document text to stdout when given the file name; configured
// converters take precedence over the built-in readers.
func New(exec executor.Executor, converters map[string]string) Extractor {
	var formats []formatExtractor
	if exec != nil && len(converters) > 0 {
		cmds := make(map[string][]string, len(converters))
		for ext, cmd := range converters {
			if fields := strings.Fields(cmd); len(fields) > 0 {
				cmds[strings.ToLower(strings.TrimPrefix(ext, "."))] = fields
			}
		}
		formats = append(formats, &commandExtractor{exec: exec, commands: cmds})
	}
	formats = append(formats,
		pdfExtractor{},
		docxExtractor{},
		xlsxExtractor{},
		plainExtractor{},
	)

	return &implExtractor{
		formats:  formats,
		fallback: printableExtractor{minRun: 4},
	}
}
