package config

import "os"

const (
	DefaultCocoDir   = "../CarDD_release/CarDD_COCO"
	DefaultOutputDir = "../dataset_cardd"
)

// CocoDir returns the COCO root from the CARDDCONV_COCO env var,
// falling back to DefaultCocoDir.
func CocoDir() string {
	if env := os.Getenv("CARDDCONV_COCO"); env != "" {
		return env
	}
	return DefaultCocoDir
}

// OutputDir returns the output root from the CARDDCONV_OUT env var,
// falling back to DefaultOutputDir.
func OutputDir() string {
	if env := os.Getenv("CARDDCONV_OUT"); env != "" {
		return env
	}
	return DefaultOutputDir
}
