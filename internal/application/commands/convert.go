package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"carddconv/internal/application"
	"carddconv/internal/domain"
	"carddconv/internal/ports"
)

// ProgressFunc is invoked once per copied file
type ProgressFunc func(split domain.Split, category, fileName string)

// SplitResult aggregates what happened to one split
type SplitResult struct {
	Split          domain.Split
	Images         int // images with at least one annotation
	Copied         int
	SkippedMissing int // annotated images whose source file was absent
	MultiCategory  int // images annotated with more than one category
}

// ConvertResult contains the result of a full conversion
type ConvertResult struct {
	Splits         []SplitResult
	Categories     []string // union of category names across splits, sorted
	Copied         int
	SkippedMissing int
	RunID          string
	Message        string
}

// ConvertCommand copies every annotated image of the three fixed splits
// into <output>/<split>/<category>/ directories
type ConvertCommand struct {
	loader    ports.AnnotationLoader
	store     ports.ImageStore
	CocoDir   string
	OutputDir string

	// MultiLabel duplicates an image into every category directory it
	// is annotated with. The default places it only in its primary
	// category (the lexicographically smallest name).
	MultiLabel bool

	// Manifest, when set, records the run and every copied file
	Manifest ports.Manifest

	// Progress, when set, is invoked after each copied file
	Progress ProgressFunc
}

// NewConvertCommand creates a new ConvertCommand
func NewConvertCommand(loader ports.AnnotationLoader, store ports.ImageStore, cocoDir, outputDir string) *ConvertCommand {
	return &ConvertCommand{
		loader:    loader,
		store:     store,
		CocoDir:   cocoDir,
		OutputDir: outputDir,
	}
}

// Validate checks if the conversion is runnable
func (c *ConvertCommand) Validate() error {
	if err := application.ValidateRequired("cocoDir", c.CocoDir); err != nil {
		return err
	}
	return application.ValidateRequired("outputDir", c.OutputDir)
}

// Execute runs the conversion over all splits in order
func (c *ConvertCommand) Execute(ctx context.Context) (*ConvertResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ConvertResult{}

	if c.Manifest != nil {
		runID, err := c.Manifest.BeginRun(c.CocoDir, c.OutputDir, c.MultiLabel)
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		result.RunID = runID
	}

	categories := make(map[string]struct{})

	for _, split := range domain.Splits {
		if err := c.store.EnsureDir(filepath.Join(c.OutputDir, split.String())); err != nil {
			return nil, fmt.Errorf("failed to create split directory: %w", err)
		}

		sr, names, err := c.processSplit(ctx, split, result.RunID)
		if err != nil {
			return nil, &application.SplitError{Split: split.String(), Err: err}
		}

		result.Splits = append(result.Splits, sr)
		result.Copied += sr.Copied
		result.SkippedMissing += sr.SkippedMissing
		for _, name := range names {
			categories[name] = struct{}{}
		}
	}

	for name := range categories {
		result.Categories = append(result.Categories, name)
	}
	sort.Strings(result.Categories)

	result.Message = fmt.Sprintf("Copied %d images into %s", result.Copied, c.OutputDir)
	return result, nil
}

// processSplit converts a single split and returns its result together
// with the category names seen in it
func (c *ConvertCommand) processSplit(ctx context.Context, split domain.Split, runID string) (SplitResult, []string, error) {
	sr := SplitResult{Split: split}

	log.Info().Str("split", split.String()).Msg("processing split")

	archive, err := c.loader.Load(filepath.Join(c.CocoDir, split.AnnotationFile()))
	if err != nil {
		return sr, nil, err
	}

	assignment, err := domain.BuildAssignment(archive)
	if err != nil {
		return sr, nil, err
	}

	fileNames, err := archive.FileNames()
	if err != nil {
		return sr, nil, err
	}

	sr.Images = len(assignment)
	imageDir := filepath.Join(c.CocoDir, split.ImageDir())

	for _, imageID := range assignment.ImageIDs() {
		if err := ctx.Err(); err != nil {
			return sr, nil, err
		}

		fileName, ok := fileNames[imageID]
		if !ok {
			return sr, nil, &domain.MissingImageError{ImageID: imageID}
		}

		names := assignment[imageID]
		if len(names) > 1 {
			sr.MultiCategory++
		}

		targets := names[:1]
		if c.MultiLabel {
			targets = names
		}

		src := filepath.Join(imageDir, fileName)
		exists, err := c.store.Exists(src)
		if err != nil {
			return sr, nil, fmt.Errorf("failed to check source %s: %w", fileName, err)
		}
		if !exists {
			sr.SkippedMissing++
			log.Debug().Str("file", fileName).Msg("source image missing, skipped")
			continue
		}

		for _, category := range targets {
			dstDir := filepath.Join(c.OutputDir, split.String(), category)
			if err := c.store.EnsureDir(dstDir); err != nil {
				return sr, nil, fmt.Errorf("failed to create category directory %s: %w", category, err)
			}

			size, err := c.store.CopyFile(src, filepath.Join(dstDir, fileName))
			if err != nil {
				return sr, nil, fmt.Errorf("failed to copy %s: %w", fileName, err)
			}
			sr.Copied++

			if c.Manifest != nil {
				if err := c.Manifest.RecordFile(runID, split, category, fileName, size); err != nil {
					return sr, nil, fmt.Errorf("failed to record %s: %w", fileName, err)
				}
			}
			if c.Progress != nil {
				c.Progress(split, category, fileName)
			}

			log.Debug().
				Str("file", fileName).
				Str("category", category).
				Str("split", split.String()).
				Msg("copied")
		}
	}

	log.Info().
		Str("split", split.String()).
		Int("images", sr.Images).
		Int("copied", sr.Copied).
		Int("missing", sr.SkippedMissing).
		Msg("split done")

	return sr, assignment.Categories(), nil
}
