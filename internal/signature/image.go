// Package signature inspects uploaded signature images. Only PNG and JPEG
// are accepted, matching the file types the upload form offers.
package signature

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"

	// decoders registered for DecodeConfig
	_ "image/jpeg"
	_ "image/png"
)

var (
	ErrEmpty             = errors.New("signature is empty")
	ErrUnsupportedFormat = errors.New("signature must be a PNG or JPEG image")
)

// Format is a supported image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the canonical file extension, with the leading dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Detect sniffs the image format from its leading bytes.
func Detect(b []byte) (Format, error) {
	if len(b) == 0 {
		return "", ErrEmpty
	}
	switch http.DetectContentType(b) {
	case "image/png":
		return FormatPNG, nil
	case "image/jpeg":
		return FormatJPEG, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Info describes a decoded signature header.
type Info struct {
	Format Format
	Width  int
	Height int
}

// Inspect detects the format and reads the image dimensions without
// decoding the pixel data.
func Inspect(b []byte) (Info, error) {
	f, err := Detect(b)
	if err != nil {
		return Info{}, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return Info{Format: f, Width: cfg.Width, Height: cfg.Height}, nil
}

// ContentType returns the MIME type to serve stored bytes with. Bytes the
// store holds from before validation existed fall back to octet-stream.
func ContentType(b []byte) string {
	f, err := Detect(b)
	if err != nil {
		return Format("").ContentType()
	}
	return f.ContentType()
}
