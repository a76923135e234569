// Package processing prepares images for upload: decoding (including WebP),
// downscaling oversized photos, and re-encoding. Preparation is optional;
// when it is disabled the original bytes go to the server untouched.
package processing

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Options controls how an image is re-encoded before upload.
type Options struct {
	// Format of the re-encoded image: jpg (default), png, or webp.
	Format string
	// MaxDim limits the long side in pixels; 0 keeps the original size.
	MaxDim int
	// Quality for jpg/webp output (1-100).
	Quality int
	// Lossless switches webp output to lossless mode.
	Lossless bool
}

// DefaultOptions returns preparation settings suitable for recognition
// uploads: JPEG at quality 85, long side capped at 1920 px.
func DefaultOptions() Options {
	return Options{Format: "jpg", MaxDim: 1920, Quality: 85}
}

// Processor handles image decode and re-encode operations.
type Processor struct{}

// NewProcessor creates a new image processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// DecodeImage decodes an image from byte data with WebP support.
func (p *Processor) DecodeImage(data []byte) (image.Image, error) {
	// Try standard image.Decode first
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// PrepareUpload decodes the image, shrinks it so the long side fits
// opts.MaxDim, and re-encodes it in opts.Format. Returns the new byte buffer.
func (p *Processor) PrepareUpload(data []byte, opts Options) ([]byte, error) {
	img, err := p.DecodeImage(data)
	if err != nil {
		return nil, err
	}

	if opts.MaxDim > 0 {
		b := img.Bounds()
		w, h := b.Dx(), b.Dy()
		if w > opts.MaxDim || h > opts.MaxDim {
			if w >= h {
				img = imaging.Resize(img, opts.MaxDim, 0, imaging.Lanczos)
			} else {
				img = imaging.Resize(img, 0, opts.MaxDim, imaging.Lanczos)
			}
		}
	}

	return p.EncodeImage(img, opts)
}

// EncodeImage serializes an image in the format given by opts.
func (p *Processor) EncodeImage(img image.Image, opts Options) ([]byte, error) {
	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	var buf bytes.Buffer
	switch strings.ToLower(opts.Format) {
	case "webp":
		wopts := &webp.Options{Lossless: opts.Lossless, Quality: float32(quality)}
		if err := webp.Encode(&buf, img, wopts); err != nil {
			return nil, err
		}
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
	default: // jpg/jpeg
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
