package application

import (
	"fmt"
	"strings"

	"carddconv/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "cocoDir" -> "COCO directory")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"cocoDir":   "COCO directory",
		"outputDir": "output directory",
		"split":     "split",
		"runID":     "run ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateSplit checks if a split names a known partition.
// Returns a ValidationError if it does not.
func ValidateSplit(fieldName string, split domain.Split) error {
	if !split.Valid() {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown split: %q", split),
		}
	}
	return nil
}
