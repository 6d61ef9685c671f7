package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/attachdesc/pkg/executor"
)

// commandExtractor runs a configured converter in the document's directory
// with the file name as its last argument.
type commandExtractor struct {
	exec     executor.Executor
	commands map[string][]string
}

func (e *commandExtractor) Supports(ext string) bool {
	_, ok := e.commands[ext]
	return ok
}

func (e *commandExtractor) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	cmd := e.commands[ext]
	args := append(append([]string{}, cmd[1:]...), filepath.Base(path))
	return e.exec.ExecuteInDir(ctx, filepath.Dir(path), cmd[0], args...)
}
