package coco

import (
	"testing"

	"github.com/spf13/afero"
)

const sampleArchive = `{
	"categories": [{"id": 1, "name": "dent"}, {"id": 2, "name": "scratch"}],
	"images": [{"id": 10, "file_name": "a.jpg", "width": 640, "height": 480}],
	"annotations": [{"id": 1, "image_id": 10, "category_id": 1, "bbox": [0, 0, 10, 10], "area": 100.0}]
}`

func TestLoader_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "annotations/instances_train2017.json", []byte(sampleArchive), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	archive, err := NewLoader(fs).Load("annotations/instances_train2017.json")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(archive.Categories) != 2 {
		t.Errorf("expected 2 categories, got %d", len(archive.Categories))
	}
	if archive.Categories[0].Name != "dent" {
		t.Errorf("expected first category dent, got %s", archive.Categories[0].Name)
	}
	if len(archive.Images) != 1 || archive.Images[0].FileName != "a.jpg" {
		t.Errorf("unexpected images: %v", archive.Images)
	}
	// Extra COCO fields (bbox, area) must be ignored, not rejected.
	if len(archive.Annotations) != 1 || archive.Annotations[0].CategoryID != 1 {
		t.Errorf("unexpected annotations: %v", archive.Annotations)
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	if _, err := NewLoader(fs).Load("annotations/instances_val2017.json"); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoader_Load_MalformedJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "broken.json", []byte(`{"categories": [`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := NewLoader(fs).Load("broken.json"); err == nil {
		t.Error("expected error for malformed JSON, got nil")
	}
}
