package report

import "time"

// Report is one described attachment.
type Report struct {
	Name        string
	Source      string
	Question    string
	Description string
	CreatedAt   time.Time
}

// Writer persists reports into an output directory and returns the written paths.
type Writer interface {
	Write(r Report) ([]string, error)
}
