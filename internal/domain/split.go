package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Split identifies one partition of the dataset
type Split string

const (
	SplitTrain Split = "train"
	SplitVal   Split = "val"
	SplitTest  Split = "test"
)

// Splits lists all partitions in processing order
var Splits = []Split{SplitTrain, SplitVal, SplitTest}

func (s Split) String() string {
	return string(s)
}

// Valid reports whether s names a known partition
func (s Split) Valid() bool {
	switch s {
	case SplitTrain, SplitVal, SplitTest:
		return true
	}
	return false
}

// ParseSplit parses a split name, accepting any casing
func ParseSplit(name string) (Split, error) {
	s := Split(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown split: %q (expected train, val or test)", name)
	}
	return s, nil
}

// AnnotationFile returns the split's annotation file path relative to
// the COCO root (e.g., "annotations/instances_train2017.json")
func (s Split) AnnotationFile() string {
	return filepath.Join("annotations", "instances_"+string(s)+"2017.json")
}

// ImageDir returns the split's image folder relative to the COCO root
// (e.g., "train2017")
func (s Split) ImageDir() string {
	return string(s) + "2017"
}
