package report

type implWriter struct {
	outputDir string
	writeDocx bool
}

// New creates a Writer that always emits <name>.md and, when writeDocx is set,
// a styled <name>.docx next to it.
func New(outputDir string, writeDocx bool) Writer {
	return &implWriter{
		outputDir: outputDir,
		writeDocx: writeDocx,
	}
}
