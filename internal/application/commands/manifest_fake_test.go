package commands

import (
	"fmt"

	"carddconv/internal/domain"
)

// fakeManifest is an in-memory ports.Manifest for command tests
type fakeManifest struct {
	runs     []domain.Run
	recorded []domain.CopiedFile
}

func (m *fakeManifest) Open(outputDir string) error { return nil }

func (m *fakeManifest) Close() error { return nil }

func (m *fakeManifest) BeginRun(cocoDir, outputDir string, multiLabel bool) (string, error) {
	id := fmt.Sprintf("run-%d", len(m.runs)+1)
	m.runs = append(m.runs, domain.Run{
		ID:         id,
		CocoDir:    cocoDir,
		OutputDir:  outputDir,
		MultiLabel: multiLabel,
	})
	return id, nil
}

func (m *fakeManifest) RecordFile(runID string, split domain.Split, category, fileName string, size int64) error {
	m.recorded = append(m.recorded, domain.CopiedFile{
		RunID:    runID,
		Split:    split,
		Category: category,
		FileName: fileName,
		Size:     size,
	})
	return nil
}

func (m *fakeManifest) LatestRun() (*domain.Run, error) {
	if len(m.runs) == 0 {
		return nil, domain.ErrNoRuns
	}
	run := m.runs[len(m.runs)-1]
	return &run, nil
}

func (m *fakeManifest) RunFiles(runID string) ([]domain.CopiedFile, error) {
	var files []domain.CopiedFile
	for _, f := range m.recorded {
		if f.RunID == runID {
			files = append(files, f)
		}
	}
	return files, nil
}

func (m *fakeManifest) CategoryCounts(runID string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, f := range m.recorded {
		if f.RunID == runID {
			counts[f.Split.String()+"/"+f.Category]++
		}
	}
	return counts, nil
}
