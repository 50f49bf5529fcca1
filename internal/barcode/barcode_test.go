package barcode

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG("C2500001-S", 400, 40)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 40 {
		t.Errorf("expected 400x40, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderPNGWidensTinyHint(t *testing.T) {
	// A 1px width hint can't hold a CODE128 symbol; the renderer widens
	// instead of failing.
	data, err := RenderPNG("C2500001-S", 1, 40)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() <= 1 {
		t.Errorf("expected widened symbol, got width %d", img.Bounds().Dx())
	}
}

func TestRenderPNGEmptyPayload(t *testing.T) {
	if _, err := RenderPNG("", 400, 40); err == nil {
		t.Error("expected error for empty payload")
	}
}

func TestPlaceholderPNG(t *testing.T) {
	data, err := PlaceholderPNG(120, 40)
	if err != nil {
		t.Fatalf("PlaceholderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 120 || bounds.Dy() != 40 {
		t.Errorf("expected 120x40, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPlaceholderPNGClampsSize(t *testing.T) {
	data, err := PlaceholderPNG(0, -5)
	if err != nil {
		t.Fatalf("PlaceholderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Errorf("expected 1x1 fallback, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}
