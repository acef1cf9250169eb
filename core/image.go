package core

import "encoding/base64"

// ImageSize represents the output dimensions for generated images.
type ImageSize string

const (
	ImageSizeSquare    ImageSize = "1024x1024"
	ImageSizeLandscape ImageSize = "1792x1024"
	ImageSizePortrait  ImageSize = "1024x1792"
)

// IsValid reports whether the size is one the image adapters accept.
func (s ImageSize) IsValid() bool {
	switch s {
	case ImageSizeSquare, ImageSizeLandscape, ImageSizePortrait:
		return true
	}
	return false
}

// AspectRatio returns the size as a W:H ratio string.
func (s ImageSize) AspectRatio() string {
	switch s {
	case ImageSizeLandscape:
		return "16:9"
	case ImageSizePortrait:
		return "9:16"
	default:
		return "1:1"
	}
}

// ImageGenerateRequest represents a request to generate images.
type ImageGenerateRequest struct {
	Model  ModelID   `json:"model,omitempty"`
	Prompt string    `json:"prompt"`
	N      int       `json:"n,omitempty"`    // Number of images to generate (default 1)
	Size   ImageSize `json:"size,omitempty"` // Image dimensions (default 1024x1024)
}

// ImageResponse represents a response containing generated images.
type ImageResponse struct {
	Created int64       `json:"created"`
	Model   ModelID     `json:"model,omitempty"`
	Data    []ImageData `json:"data"`
}

// ImageData represents a single generated image.
type ImageData struct {
	B64JSON       string `json:"b64_json,omitempty"`
	MimeType      string `json:"mime_type,omitempty"`
	URL           string `json:"url,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// GetBytes decodes and returns the image data.
func (d ImageData) GetBytes() ([]byte, error) {
	if d.B64JSON != "" {
		return base64.StdEncoding.DecodeString(d.B64JSON)
	}
	return nil, nil // URL must be fetched separately
}

// Link returns a URL usable by a browser: the hosted URL when present,
// otherwise a data URL built from the inline payload.
func (d ImageData) Link() string {
	if d.URL != "" {
		return d.URL
	}
	if d.B64JSON == "" {
		return ""
	}
	mime := d.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return DataURL{MimeType: mime, Data: d.B64JSON}.String()
}
