package photos

import "strings"

// ImageMediaPrefix marks the declared media types accepted for upload.
const ImageMediaPrefix = "image/"

// PhotoInfo is one entry of the backend photo listing.
type PhotoInfo struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// PhotoConversion is the per-photo entry of the backend status report.
type PhotoConversion struct {
	Filename  string `json:"filename"`
	Converted bool   `json:"converted"`
}

// PhotoStatus is the backend conversion status report.
type PhotoStatus struct {
	TotalPhotos     int               `json:"total_photos"`
	ConvertedPhotos int               `json:"converted_photos"`
	Photos          []PhotoConversion `json:"photos"`
}

// ConvertedIndex returns the set of filenames marked as converted.
func (s *PhotoStatus) ConvertedIndex() map[string]bool {
	index := make(map[string]bool)
	if s == nil {
		return index
	}
	for _, p := range s.Photos {
		if p.Converted {
			index[p.Filename] = true
		}
	}
	return index
}

// IsImage reports whether a declared media type is an image type.
// The comparison is case-sensitive, as browsers report lower-case types.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, ImageMediaPrefix)
}
