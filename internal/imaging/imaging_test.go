package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestProcessLogoJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	result, err := ProcessLogo(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessLogo JPEG: %v", err)
	}
	if result.MIME != "image/png" {
		t.Errorf("expected image/png (always outputs PNG), got %s", result.MIME)
	}
	if len(result.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessLogoPNG(t *testing.T) {
	data := createTestPNG(100, 100)
	result, err := ProcessLogo(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessLogo PNG: %v", err)
	}
	if result.MIME != "image/png" {
		t.Errorf("expected image/png, got %s", result.MIME)
	}
}

func TestProcessLogoDownscale(t *testing.T) {
	data := createTestJPEG(2048, 1024)
	result, err := ProcessLogo(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessLogo large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
	// Aspect ratio preserved: 2:1 input stays 2:1.
	if bounds.Dx() != 2*bounds.Dy() {
		t.Errorf("expected 2:1 aspect ratio, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessLogoSmallImageNotUpscaled(t *testing.T) {
	data := createTestPNG(50, 50)
	result, err := ProcessLogo(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessLogo small image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small image should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessLogoInvalidFormat(t *testing.T) {
	_, err := ProcessLogo(bytes.NewReader([]byte("not an image")))
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessLogoGIFRejected(t *testing.T) {
	// GIF magic bytes.
	_, err := ProcessLogo(bytes.NewReader([]byte("GIF89a...")))
	if err == nil {
		t.Error("expected error for GIF")
	}
}
