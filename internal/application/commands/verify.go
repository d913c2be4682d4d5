package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"carddconv/internal/application"
	"carddconv/internal/ports"
)

// VerifyResult contains the result of checking the output tree against
// the newest recorded run
type VerifyResult struct {
	RunID        string
	Checked      int
	Missing      []string // paths relative to the output root
	SizeMismatch []string
	Message      string
}

// OK reports whether the output tree matches the manifest
func (r *VerifyResult) OK() bool {
	return len(r.Missing) == 0 && len(r.SizeMismatch) == 0
}

// VerifyCommand replays the newest manifest run against the output tree
type VerifyCommand struct {
	manifest  ports.Manifest
	store     ports.ImageStore
	OutputDir string
}

// NewVerifyCommand creates a new VerifyCommand
func NewVerifyCommand(manifest ports.Manifest, store ports.ImageStore, outputDir string) *VerifyCommand {
	return &VerifyCommand{
		manifest:  manifest,
		store:     store,
		OutputDir: outputDir,
	}
}

// Validate checks if the verification is runnable
func (c *VerifyCommand) Validate() error {
	return application.ValidateRequired("outputDir", c.OutputDir)
}

// Execute runs the verify command
func (c *VerifyCommand) Execute(ctx context.Context) (*VerifyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	run, err := c.manifest.LatestRun()
	if err != nil {
		return nil, err
	}

	files, err := c.manifest.RunFiles(run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read run files: %w", err)
	}

	result := &VerifyResult{RunID: run.ID}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.Checked++
		path := filepath.Join(c.OutputDir, f.RelPath())

		exists, err := c.store.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", f.RelPath(), err)
		}
		if !exists {
			result.Missing = append(result.Missing, f.RelPath())
			continue
		}

		size, err := c.store.Size(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", f.RelPath(), err)
		}
		if size != f.Size {
			result.SizeMismatch = append(result.SizeMismatch, f.RelPath())
		}
	}

	if result.OK() {
		result.Message = fmt.Sprintf("Verified %d files against run %s", result.Checked, run.ID)
	} else {
		result.Message = fmt.Sprintf("Run %s: %d missing, %d size mismatches out of %d files",
			run.ID, len(result.Missing), len(result.SizeMismatch), result.Checked)
	}

	return result, nil
}
