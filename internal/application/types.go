package application

import "carddconv/internal/domain"

// Re-export split identifiers for use by adapters and the CLI
type Split = domain.Split

const (
	SplitTrain = domain.SplitTrain
	SplitVal   = domain.SplitVal
	SplitTest  = domain.SplitTest
)

// Splits lists all partitions in processing order
var Splits = domain.Splits

// Re-export domain types for use by adapters and the CLI
type (
	Archive    = domain.Archive
	Category   = domain.Category
	Image      = domain.Image
	Annotation = domain.Annotation
	Assignment = domain.Assignment
	Run        = domain.Run
	CopiedFile = domain.CopiedFile
)

// ParseSplit parses a split name, accepting any casing
func ParseSplit(name string) (Split, error) {
	return domain.ParseSplit(name)
}
