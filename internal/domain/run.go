package domain

import (
	"errors"
	"path/filepath"
	"time"
)

// ErrNoRuns indicates that the manifest has no recorded conversion runs
var ErrNoRuns = errors.New("no recorded conversion runs")

// Run is one recorded conversion run
type Run struct {
	ID         string
	StartedAt  time.Time
	CocoDir    string
	OutputDir  string
	MultiLabel bool
}

// CopiedFile is one output file recorded against a run
type CopiedFile struct {
	RunID    string
	Split    Split
	Category string
	FileName string
	Size     int64
}

// RelPath returns the file's path relative to the output root
func (f CopiedFile) RelPath() string {
	return filepath.Join(string(f.Split), f.Category, f.FileName)
}
