package executor

import "context"

// Executor runs external commands and returns what they print. An empty dir runs
// the command in the current working directory.
type Executor interface {
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
