// Package avatar validates, normalizes and stores profile photos.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register gif
	"image/jpeg"
	"image/png"
	"net/http"
	"slices"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp
)

// Upload limits.
const (
	MaxSize      = 5 << 20
	MaxDimension = 1024
	jpegQuality  = 85
)

// AcceptedTypes lists the content types the server stores.
var AcceptedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Errors
var (
	ErrTooLarge        = errors.New("avatar exceeds the 5 MB limit")
	ErrUnsupportedType = errors.New("avatar must be a JPEG, PNG, GIF or WebP image")
	ErrEmpty           = errors.New("avatar file is empty")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is an uploaded avatar after inspection.
type Image struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Extension returns the file extension for the content type.
func (img Image) Extension() string {
	return extensions[img.ContentType]
}

// Inspect checks size, sniffs the content type and decodes the image header.
func Inspect(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrEmpty
	}
	if len(data) > MaxSize {
		return Image{}, ErrTooLarge
	}
	ct := http.DetectContentType(data)
	if !slices.Contains(AcceptedTypes, ct) {
		return Image{}, fmt.Errorf("%w: got %s", ErrUnsupportedType, ct)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	return Image{Data: data, ContentType: ct, Width: cfg.Width, Height: cfg.Height}, nil
}

// Normalize downscales images larger than MaxDimension on either side. JPEG sources stay
// JPEG; everything else is re-encoded as PNG to keep transparency. Animated GIFs lose
// all but the first frame when scaled.
func Normalize(img Image) (Image, error) {
	if img.Width <= MaxDimension && img.Height <= MaxDimension {
		return img, nil
	}
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	w, h := fit(img.Width, img.Height, MaxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	out := Image{Width: w, Height: h}
	if img.ContentType == "image/jpeg" {
		out.ContentType = "image/jpeg"
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	} else {
		out.ContentType = "image/png"
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return Image{}, fmt.Errorf("encode avatar: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}

// fit scales w×h to fit within limit, keeping the aspect ratio.
func fit(w, h, limit int) (int, int) {
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
