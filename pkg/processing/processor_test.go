package processing

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodeTestImage builds an in-memory PNG of the given size
func encodeTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	p := NewProcessor()
	data := encodeTestImage(t, 64, 48)

	img, err := p.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 48 {
		t.Errorf("Expected 64x48, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestDecodeImageInvalid(t *testing.T) {
	p := NewProcessor()
	if _, err := p.DecodeImage([]byte("definitely not an image")); err == nil {
		t.Error("Expected error for non-image data")
	}
}

func TestPrepareUploadDownscales(t *testing.T) {
	p := NewProcessor()
	data := encodeTestImage(t, 800, 400)

	out, err := p.PrepareUpload(data, Options{Format: "jpg", MaxDim: 200, Quality: 80})
	if err != nil {
		t.Fatalf("PrepareUpload failed: %v", err)
	}

	img, err := p.DecodeImage(out)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 200 {
		t.Errorf("Expected long side 200, got %d", bounds.Dx())
	}
	if bounds.Dy() != 100 {
		t.Errorf("Expected aspect-preserving height 100, got %d", bounds.Dy())
	}
}

func TestPrepareUploadKeepsSmallImages(t *testing.T) {
	p := NewProcessor()
	data := encodeTestImage(t, 100, 80)

	out, err := p.PrepareUpload(data, Options{Format: "png", MaxDim: 1920})
	if err != nil {
		t.Fatalf("PrepareUpload failed: %v", err)
	}

	img, err := p.DecodeImage(out)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("Small image should not be resized, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestEncodeImageFormats(t *testing.T) {
	p := NewProcessor()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))

	for _, format := range []string{"jpg", "jpeg", "png", "webp"} {
		out, err := p.EncodeImage(img, Options{Format: format, Quality: 85})
		if err != nil {
			t.Errorf("EncodeImage(%s) failed: %v", format, err)
			continue
		}
		if len(out) == 0 {
			t.Errorf("EncodeImage(%s) returned empty buffer", format)
		}
		if _, err := p.DecodeImage(out); err != nil {
			t.Errorf("EncodeImage(%s) output does not decode: %v", format, err)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Format != "jpg" {
		t.Errorf("Expected default format jpg, got %s", opts.Format)
	}
	if opts.MaxDim != 1920 {
		t.Errorf("Expected default max dimension 1920, got %d", opts.MaxDim)
	}
}
