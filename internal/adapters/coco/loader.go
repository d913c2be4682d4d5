package coco

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"

	"carddconv/internal/domain"
	"carddconv/internal/ports"
)

// Loader implements ports.AnnotationLoader for COCO instance files
type Loader struct {
	fs afero.Fs
}

// Ensure Loader implements AnnotationLoader
var _ ports.AnnotationLoader = (*Loader)(nil)

// NewLoader creates a new annotation loader on the given filesystem
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// Load reads and decodes one instances_<split>2017.json file
func (l *Loader) Load(path string) (*domain.Archive, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation file: %w", err)
	}

	var archive domain.Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &archive, nil
}
