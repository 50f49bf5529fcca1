// Package barcode renders SKU payloads as scannable CODE128 images. It is
// the rendering collaborator behind the label layout engine: the core only
// hands it a payload string and size hints.
package barcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	boombuler "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// RenderPNG encodes payload as CODE128 (start/stop and checksum included)
// and returns a PNG scaled to the given size hints. A width hint smaller
// than the symbol's minimal module width is widened instead of squeezing
// bars below one pixel.
func RenderPNG(payload string, widthPx, heightPx int) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty barcode payload")
	}

	code, err := code128.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding CODE128: %w", err)
	}

	if min := code.Bounds().Dx(); widthPx < min {
		widthPx = min
	}
	if heightPx < 1 {
		heightPx = 40
	}

	scaled, err := boombuler.Scale(code, widthPx, heightPx)
	if err != nil {
		return nil, fmt.Errorf("scaling barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding barcode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// PlaceholderPNG returns a blank light-grey image of the given size, used
// when barcode rendering fails so a label renders without its symbol
// instead of failing outright.
func PlaceholderPNG(widthPx, heightPx int) ([]byte, error) {
	if widthPx < 1 {
		widthPx = 1
	}
	if heightPx < 1 {
		heightPx = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	grey := color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	for y := 0; y < heightPx; y++ {
		for x := 0; x < widthPx; x++ {
			img.Set(x, y, grey)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding placeholder PNG: %w", err)
	}
	return buf.Bytes(), nil
}
