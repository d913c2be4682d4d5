package ports

import "carddconv/internal/domain"

// AnnotationLoader reads and decodes one split's COCO annotation file
type AnnotationLoader interface {
	Load(path string) (*domain.Archive, error)
}
