package ports

import "carddconv/internal/domain"

// Manifest records what each conversion run copied, so later runs can
// be compared against the output tree.
type Manifest interface {
	// Lifecycle
	Open(outputDir string) error
	Close() error

	// BeginRun records a new conversion run and returns its id
	BeginRun(cocoDir, outputDir string, multiLabel bool) (string, error)

	// RecordFile records one copied output file against a run
	RecordFile(runID string, split domain.Split, category, fileName string, size int64) error

	// Queries
	LatestRun() (*domain.Run, error)
	RunFiles(runID string) ([]domain.CopiedFile, error)
	CategoryCounts(runID string) (map[string]int, error)
}
