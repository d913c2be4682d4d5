package domain

import "fmt"

// Category represents one damage-type label in a COCO annotation archive
// (e.g., dent, scratch)
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Image represents one image entry in a COCO annotation archive
type Image struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Annotation links an image to a category. The remaining COCO fields
// (bbox, segmentation, area, ...) are not needed for restructuring and
// are left undecoded.
type Annotation struct {
	ID         int `json:"id"`
	ImageID    int `json:"image_id"`
	CategoryID int `json:"category_id"`
}

// Archive is the decoded form of one instances_<split>2017.json file
type Archive struct {
	Categories  []Category   `json:"categories"`
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
}

// CategoryNames builds the category id to name lookup table
func (a *Archive) CategoryNames() (map[int]string, error) {
	names := make(map[int]string, len(a.Categories))
	for _, cat := range a.Categories {
		if _, ok := names[cat.ID]; ok {
			return nil, fmt.Errorf("duplicate category id %d", cat.ID)
		}
		names[cat.ID] = cat.Name
	}
	return names, nil
}

// FileNames builds the image id to file name lookup table
func (a *Archive) FileNames() (map[int]string, error) {
	files := make(map[int]string, len(a.Images))
	for _, img := range a.Images {
		if _, ok := files[img.ID]; ok {
			return nil, fmt.Errorf("duplicate image id %d", img.ID)
		}
		files[img.ID] = img.FileName
	}
	return files, nil
}
