package domain

import (
	"fmt"
	"sort"
)

// UnknownCategoryError reports an annotation whose category id has no
// entry in the archive's category list
type UnknownCategoryError struct {
	CategoryID int
	ImageID    int
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("annotation for image %d references unknown category id %d", e.ImageID, e.CategoryID)
}

// MissingImageError reports an annotated image id that has no entry in
// the archive's image list
type MissingImageError struct {
	ImageID int
}

func (e *MissingImageError) Error() string {
	return fmt.Sprintf("annotations reference image id %d which is not in the image list", e.ImageID)
}

// Assignment maps each annotated image id to the sorted set of category
// names its annotations reference. Images without annotations have no
// entry and are never part of a conversion.
type Assignment map[int][]string

// BuildAssignment groups an archive's annotations by image, collapsing
// duplicate categories and sorting the names so that every derived
// decision is stable across runs.
func BuildAssignment(a *Archive) (Assignment, error) {
	names, err := a.CategoryNames()
	if err != nil {
		return nil, err
	}

	sets := make(map[int]map[string]struct{})
	for _, ann := range a.Annotations {
		name, ok := names[ann.CategoryID]
		if !ok {
			return nil, &UnknownCategoryError{CategoryID: ann.CategoryID, ImageID: ann.ImageID}
		}
		set, ok := sets[ann.ImageID]
		if !ok {
			set = make(map[string]struct{})
			sets[ann.ImageID] = set
		}
		set[name] = struct{}{}
	}

	asg := make(Assignment, len(sets))
	for id, set := range sets {
		list := make([]string, 0, len(set))
		for name := range set {
			list = append(list, name)
		}
		sort.Strings(list)
		asg[id] = list
	}
	return asg, nil
}

// ImageIDs returns the annotated image ids in ascending order
func (a Assignment) ImageIDs() []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Primary returns the category an image lands in under multi-class
// semantics: the lexicographically smallest of its category names.
func (a Assignment) Primary(imageID int) (string, bool) {
	names := a[imageID]
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// MultiCategory returns the ids of images annotated with more than one
// distinct category, in ascending order
func (a Assignment) MultiCategory() []int {
	var ids []int
	for id, names := range a {
		if len(names) > 1 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Categories returns the union of category names across all annotated
// images, sorted
func (a Assignment) Categories() []string {
	set := make(map[string]struct{})
	for _, names := range a {
		for _, name := range names {
			set[name] = struct{}{}
		}
	}
	union := make([]string, 0, len(set))
	for name := range set {
		union = append(union, name)
	}
	sort.Strings(union)
	return union
}
