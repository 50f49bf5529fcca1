// Package label turns stored settings and products into complete,
// renderable label descriptions. Everything in it is pure: the same inputs
// always produce the same outputs.
package label

import (
	"math"

	"github.com/aldeenj/veilflow/internal/model"
)

// Default settings, applied field by field wherever the stored record is
// silent.
const (
	DefaultLabelWidthCm  = 5.0
	DefaultLabelHeightCm = 2.5
	DefaultPaperSize     = "custom"
	DefaultPaperType     = "a4"
	DefaultMarginMm      = 10
	DefaultFontSizePx    = 10
)

// Dimensions is a physical label size in centimeters.
type Dimensions struct {
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
}

// paperPresets maps named label-roll sizes to fixed dimensions.
var paperPresets = map[string]Dimensions{
	"50x25":   {WidthCm: 5.0, HeightCm: 2.5},
	"50x40":   {WidthCm: 5.0, HeightCm: 4.0},
	"57x40":   {WidthCm: 5.7, HeightCm: 4.0},
	"60x40":   {WidthCm: 6.0, HeightCm: 4.0},
	"100x100": {WidthCm: 10.0, HeightCm: 10.0},
	"100x150": {WidthCm: 10.0, HeightCm: 15.0},
}

// PaperPreset looks up a named paper size. The "custom" sentinel (and any
// unknown key) reports false, signalling that dimensions stay user-editable.
func PaperPreset(key string) (Dimensions, bool) {
	dims, ok := paperPresets[key]
	return dims, ok
}

// PaperPresetKeys returns the available preset names, for API consumers.
func PaperPresetKeys() []string {
	return []string{"50x25", "50x40", "57x40", "60x40", "100x100", "100x150"}
}

// Resolve fills every field of the effective settings from the stored
// record, falling back to defaults where it is silent. When the paper size
// names a known preset, the dimensions come from the preset table and are
// marked locked; "custom" leaves the stored dimensions editable.
func Resolve(stored model.Settings) model.EffectiveSettings {
	eff := model.EffectiveSettings{
		LabelWidth:    DefaultLabelWidthCm,
		LabelHeight:   DefaultLabelHeightCm,
		PaperSize:     DefaultPaperSize,
		PaperType:     DefaultPaperType,
		MarginTop:     DefaultMarginMm,
		MarginRight:   DefaultMarginMm,
		MarginBottom:  DefaultMarginMm,
		MarginLeft:    DefaultMarginMm,
		FontSize:      DefaultFontSizePx,
		LabelTemplate: DefaultTemplate,
	}

	if stored.LabelWidth != nil {
		eff.LabelWidth = *stored.LabelWidth
	}
	if stored.LabelHeight != nil {
		eff.LabelHeight = *stored.LabelHeight
	}
	if stored.PaperSize != "" {
		eff.PaperSize = stored.PaperSize
	}
	if stored.PaperType != "" {
		eff.PaperType = stored.PaperType
	}
	if stored.MarginTop != nil {
		eff.MarginTop = *stored.MarginTop
	}
	if stored.MarginRight != nil {
		eff.MarginRight = *stored.MarginRight
	}
	if stored.MarginBottom != nil {
		eff.MarginBottom = *stored.MarginBottom
	}
	if stored.MarginLeft != nil {
		eff.MarginLeft = *stored.MarginLeft
	}
	if stored.FontSize != nil {
		eff.FontSize = *stored.FontSize
	}
	if stored.LabelTemplate != "" {
		eff.LabelTemplate = stored.LabelTemplate
	}
	eff.ShopName = stored.ShopName
	if stored.ShowLogoOnLabel != nil {
		eff.ShowLogoOnLabel = *stored.ShowLogoOnLabel
	}

	if dims, ok := PaperPreset(eff.PaperSize); ok {
		eff.LabelWidth = dims.WidthCm
		eff.LabelHeight = dims.HeightCm
		eff.DimensionsLocked = true
	}

	return eff
}

// DefaultDPI is the print resolution assumed for pixel conversions;
// 203 dpi is the common thermal-printer density.
const DefaultDPI = 203

// CmToMm converts centimeters to millimeters.
func CmToMm(cm float64) float64 { return cm * 10 }

// MmToCm converts millimeters to centimeters.
func MmToCm(mm float64) float64 { return mm / 10 }

// CmToPx converts a physical length to pixels at the given resolution.
func CmToPx(cm float64, dpi int) int {
	return int(math.Round(cm / 2.54 * float64(dpi)))
}

// PageSize is the physical page directive handed to the print-styling
// collaborator. The printable dimensions are the interior box left after
// the margins.
type PageSize struct {
	WidthCm           float64 `json:"widthCm"`
	HeightCm          float64 `json:"heightCm"`
	WidthMm           float64 `json:"widthMm"`
	HeightMm          float64 `json:"heightMm"`
	WidthPx           int     `json:"widthPx"`
	HeightPx          int     `json:"heightPx"`
	PrintableWidthCm  float64 `json:"printableWidthCm"`
	PrintableHeightCm float64 `json:"printableHeightCm"`
	DPI               int     `json:"dpi"`
}

// PageSizeFor derives the print page size from effective settings.
func PageSizeFor(eff model.EffectiveSettings, dpi int) PageSize {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return PageSize{
		WidthCm:           eff.LabelWidth,
		HeightCm:          eff.LabelHeight,
		WidthMm:           CmToMm(eff.LabelWidth),
		HeightMm:          CmToMm(eff.LabelHeight),
		WidthPx:           CmToPx(eff.LabelWidth, dpi),
		HeightPx:          CmToPx(eff.LabelHeight, dpi),
		PrintableWidthCm:  max(0, eff.LabelWidth-MmToCm(float64(eff.MarginLeft+eff.MarginRight))),
		PrintableHeightCm: max(0, eff.LabelHeight-MmToCm(float64(eff.MarginTop+eff.MarginBottom))),
		DPI:               dpi,
	}
}
