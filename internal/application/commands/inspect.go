package commands

import (
	"context"
	"path/filepath"
	"sort"

	"carddconv/internal/application"
	"carddconv/internal/domain"
	"carddconv/internal/ports"
)

// InspectResult summarizes one split's annotation file
type InspectResult struct {
	Split         domain.Split
	Categories    []domain.Category // sorted by id
	Images        int
	Annotated     int
	Unannotated   int
	Annotations   int
	MultiCategory int
	// PrimaryCounts maps category name to the number of images that
	// would land in it under multi-class semantics
	PrimaryCounts map[string]int
}

// InspectCommand summarizes a split's annotations without copying anything
type InspectCommand struct {
	loader  ports.AnnotationLoader
	CocoDir string
	Split   domain.Split
}

// NewInspectCommand creates a new InspectCommand
func NewInspectCommand(loader ports.AnnotationLoader, cocoDir string, split domain.Split) *InspectCommand {
	return &InspectCommand{
		loader:  loader,
		CocoDir: cocoDir,
		Split:   split,
	}
}

// Validate checks if the inspection is runnable
func (c *InspectCommand) Validate() error {
	if err := application.ValidateRequired("cocoDir", c.CocoDir); err != nil {
		return err
	}
	return application.ValidateSplit("split", c.Split)
}

// Execute runs the inspect command
func (c *InspectCommand) Execute(ctx context.Context) (*InspectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	archive, err := c.loader.Load(filepath.Join(c.CocoDir, c.Split.AnnotationFile()))
	if err != nil {
		return nil, &application.SplitError{Split: c.Split.String(), Err: err}
	}

	assignment, err := domain.BuildAssignment(archive)
	if err != nil {
		return nil, &application.SplitError{Split: c.Split.String(), Err: err}
	}

	result := &InspectResult{
		Split:         c.Split,
		Images:        len(archive.Images),
		Annotated:     len(assignment),
		Unannotated:   len(archive.Images) - len(assignment),
		Annotations:   len(archive.Annotations),
		MultiCategory: len(assignment.MultiCategory()),
		PrimaryCounts: make(map[string]int),
	}

	result.Categories = append(result.Categories, archive.Categories...)
	sortCategories(result.Categories)

	for _, imageID := range assignment.ImageIDs() {
		if primary, ok := assignment.Primary(imageID); ok {
			result.PrimaryCounts[primary]++
		}
	}

	return result, nil
}

// sortCategories sorts categories by id in ascending order
func sortCategories(categories []domain.Category) {
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
}
