package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"

	"carddconv/internal/adapters/coco"
	"carddconv/internal/adapters/filesystem"
	"carddconv/internal/domain"
)

func writeArchive(t *testing.T, fs afero.Fs, path string, archive *domain.Archive) {
	t.Helper()

	data, err := json.Marshal(archive)
	if err != nil {
		t.Fatalf("failed to marshal archive: %v", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
}

// setupConversion builds a COCO tree under coco/ with a populated train
// split and empty val/test splits:
//
//	image 10 a.jpg       dent
//	image 11 b.jpg       dent + scratch
//	image 12 c.jpg       no annotations
//	image 13 gone.jpg    scratch, file absent on disk
func setupConversion(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()

	train := &domain.Archive{
		Categories: []domain.Category{
			{ID: 1, Name: "dent"},
			{ID: 2, Name: "scratch"},
		},
		Images: []domain.Image{
			{ID: 10, FileName: "a.jpg"},
			{ID: 11, FileName: "b.jpg"},
			{ID: 12, FileName: "c.jpg"},
			{ID: 13, FileName: "gone.jpg"},
		},
		Annotations: []domain.Annotation{
			{ID: 1, ImageID: 10, CategoryID: 1},
			{ID: 2, ImageID: 11, CategoryID: 1},
			{ID: 3, ImageID: 11, CategoryID: 2},
			{ID: 4, ImageID: 13, CategoryID: 2},
		},
	}
	writeArchive(t, fs, "coco/annotations/instances_train2017.json", train)
	writeArchive(t, fs, "coco/annotations/instances_val2017.json", &domain.Archive{})
	writeArchive(t, fs, "coco/annotations/instances_test2017.json", &domain.Archive{})

	for name, content := range map[string]string{
		"a.jpg": "image-a",
		"b.jpg": "image-b",
		"c.jpg": "image-c",
	} {
		if err := afero.WriteFile(fs, filepath.Join("coco/train2017", name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write image %s: %v", name, err)
		}
	}

	return fs
}

func newTestConvert(fs afero.Fs) *ConvertCommand {
	return NewConvertCommand(coco.NewLoader(fs), filesystem.NewStore(fs), "coco", "out")
}

func TestConvertCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cocoDir   string
		outputDir string
		wantErr   bool
	}{
		{name: "valid", cocoDir: "coco", outputDir: "out", wantErr: false},
		{name: "empty coco dir", cocoDir: "", outputDir: "out", wantErr: true},
		{name: "empty output dir", cocoDir: "coco", outputDir: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			cmd := NewConvertCommand(coco.NewLoader(fs), filesystem.NewStore(fs), tt.cocoDir, tt.outputDir)
			err := cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvertCommand_Execute(t *testing.T) {
	fs := setupConversion(t)

	result, err := newTestConvert(fs).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// a.jpg lands in its single category, byte for byte.
	got, err := afero.ReadFile(fs, "out/train/dent/a.jpg")
	if err != nil {
		t.Fatalf("expected out/train/dent/a.jpg: %v", err)
	}
	if string(got) != "image-a" {
		t.Errorf("copied content differs: %q", got)
	}

	// b.jpg has two categories and goes only to the primary (smallest name).
	if ok, _ := afero.Exists(fs, "out/train/dent/b.jpg"); !ok {
		t.Error("expected b.jpg in its primary category dent")
	}
	if ok, _ := afero.Exists(fs, "out/train/scratch/b.jpg"); ok {
		t.Error("b.jpg must not be duplicated into scratch")
	}

	// c.jpg has no annotations and is never copied.
	matches, err := afero.Glob(fs, "out/*/*/c.jpg")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("unannotated image copied: %v", matches)
	}

	// gone.jpg is annotated but absent on disk: counted, not fatal.
	if result.SkippedMissing != 1 {
		t.Errorf("expected 1 skipped missing image, got %d", result.SkippedMissing)
	}

	if result.Copied != 2 {
		t.Errorf("expected 2 copies, got %d", result.Copied)
	}

	train := result.Splits[0]
	if train.Split != domain.SplitTrain {
		t.Fatalf("expected train split first, got %s", train.Split)
	}
	if train.Images != 3 {
		t.Errorf("expected 3 annotated images in train, got %d", train.Images)
	}
	if train.MultiCategory != 1 {
		t.Errorf("expected 1 multi-category image, got %d", train.MultiCategory)
	}

	// Empty splits still get their directories.
	for _, split := range []string{"val", "test"} {
		if ok, _ := afero.DirExists(fs, filepath.Join("out", split)); !ok {
			t.Errorf("expected %s directory", split)
		}
	}

	want := []string{"dent", "scratch"}
	if len(result.Categories) != 2 || result.Categories[0] != want[0] || result.Categories[1] != want[1] {
		t.Errorf("expected categories %v, got %v", want, result.Categories)
	}
}

func TestConvertCommand_MultiLabel(t *testing.T) {
	fs := setupConversion(t)

	cmd := newTestConvert(fs)
	cmd.MultiLabel = true

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for _, path := range []string{"out/train/dent/b.jpg", "out/train/scratch/b.jpg"} {
		if ok, _ := afero.Exists(fs, path); !ok {
			t.Errorf("expected %s in multi-label mode", path)
		}
	}
	if result.Copied != 3 {
		t.Errorf("expected 3 copies, got %d", result.Copied)
	}
}

func TestConvertCommand_UnknownCategoryAborts(t *testing.T) {
	fs := setupConversion(t)

	train := &domain.Archive{
		Categories:  []domain.Category{{ID: 1, Name: "dent"}},
		Images:      []domain.Image{{ID: 10, FileName: "a.jpg"}},
		Annotations: []domain.Annotation{{ID: 1, ImageID: 10, CategoryID: 99}},
	}
	writeArchive(t, fs, "coco/annotations/instances_train2017.json", train)

	_, err := newTestConvert(fs).Execute(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var unknownErr *domain.UnknownCategoryError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownCategoryError, got %T: %v", err, err)
	}

	// The split aborts before any copy.
	if ok, _ := afero.Exists(fs, "out/train/dent/a.jpg"); ok {
		t.Error("no image should be copied after a lookup failure")
	}
}

func TestConvertCommand_MissingImageEntryAborts(t *testing.T) {
	fs := setupConversion(t)

	train := &domain.Archive{
		Categories:  []domain.Category{{ID: 1, Name: "dent"}},
		Images:      []domain.Image{{ID: 10, FileName: "a.jpg"}},
		Annotations: []domain.Annotation{{ID: 1, ImageID: 77, CategoryID: 1}},
	}
	writeArchive(t, fs, "coco/annotations/instances_train2017.json", train)

	_, err := newTestConvert(fs).Execute(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var missingErr *domain.MissingImageError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingImageError, got %T: %v", err, err)
	}
	if missingErr.ImageID != 77 {
		t.Errorf("expected image id 77, got %d", missingErr.ImageID)
	}
}

func TestConvertCommand_MissingAnnotationFileAborts(t *testing.T) {
	fs := setupConversion(t)
	if err := fs.Remove("coco/annotations/instances_val2017.json"); err != nil {
		t.Fatalf("failed to remove annotation file: %v", err)
	}

	if _, err := newTestConvert(fs).Execute(context.Background()); err == nil {
		t.Fatal("expected error for missing annotation file, got nil")
	}
}

func TestConvertCommand_Idempotent(t *testing.T) {
	fs := setupConversion(t)

	if _, err := newTestConvert(fs).Execute(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	first := snapshotTree(t, fs, "out")

	result, err := newTestConvert(fs).Execute(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if result.Copied != 2 {
		t.Errorf("expected 2 copies on rerun, got %d", result.Copied)
	}

	second := snapshotTree(t, fs, "out")
	if len(first) != len(second) {
		t.Fatalf("tree changed between runs: %d vs %d files", len(first), len(second))
	}
	for path, content := range first {
		if second[path] != content {
			t.Errorf("content of %s changed between runs", path)
		}
	}
}

func TestConvertCommand_ProgressAndManifest(t *testing.T) {
	fs := setupConversion(t)

	manifest := &fakeManifest{}
	cmd := newTestConvert(fs)
	cmd.Manifest = manifest

	var progressed int
	cmd.Progress = func(split domain.Split, category, fileName string) {
		progressed++
	}

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if progressed != result.Copied {
		t.Errorf("expected %d progress calls, got %d", result.Copied, progressed)
	}
	if result.RunID == "" {
		t.Error("expected a run id when a manifest is set")
	}
	if len(manifest.recorded) != result.Copied {
		t.Errorf("expected %d recorded files, got %d", result.Copied, len(manifest.recorded))
	}
	for _, f := range manifest.recorded {
		if f.RunID != result.RunID {
			t.Errorf("file recorded against wrong run: %s", f.RunID)
		}
	}
}

// snapshotTree maps every file under root to its content
func snapshotTree(t *testing.T, fs afero.Fs, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		tree[path] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s: %v", root, err)
	}
	return tree
}
