package core

import (
	"fmt"
	"regexp"
)

// ContentPart represents a part of multimodal content in a message.
type ContentPart interface {
	// ContentType returns the type identifier for this content part.
	ContentType() string
}

// InputText represents text content in a multimodal message.
type InputText struct {
	Text string
}

// ContentType returns the type identifier for InputText.
func (t InputText) ContentType() string {
	return "input_text"
}

// InputImage represents image content in a multimodal message.
type InputImage struct {
	// ImageURL is an HTTPS URL or data URL (data:image/jpeg;base64,...).
	ImageURL string
}

// ContentType returns the type identifier for InputImage.
func (i InputImage) ContentType() string {
	return "input_image"
}

var dataURLPattern = regexp.MustCompile(`^data:([\w.+-]+/[\w.+-]+);base64,(.+)$`)

// DataURL is a decoded-in-place view of a base64 data URL.
type DataURL struct {
	MimeType string
	Data     string // still base64 encoded
}

// ParseDataURL validates s against data:<mime>;base64,<payload>.
// Any mime type is accepted; adapters forward unfamiliar ones as-is.
func ParseDataURL(s string) (DataURL, error) {
	m := dataURLPattern.FindStringSubmatch(s)
	if m == nil {
		return DataURL{}, fmt.Errorf("%w: image is not a base64 data URL", ErrBadRequest)
	}
	return DataURL{MimeType: m[1], Data: m[2]}, nil
}

// String reassembles the data URL.
func (d DataURL) String() string {
	return "data:" + d.MimeType + ";base64," + d.Data
}
