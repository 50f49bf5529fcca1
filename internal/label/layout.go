package label

import (
	"github.com/aldeenj/veilflow/internal/model"
)

// Currency is the price suffix printed on labels.
const Currency = "ر.س"

// DefaultTemplate is used when settings name no (or an unknown) template.
const DefaultTemplate = "classic"

// maxNameLength bounds the product name on a label; longer names are
// truncated with an ellipsis.
const maxNameLength = 50

// TemplateStyle is the visual parameter set of one label template. The
// templates form a closed set of data records consumed by a single
// renderer; there is no markup in the core.
type TemplateStyle struct {
	ID          string  `json:"id"`
	HeaderBand  bool    `json:"headerBand"`  // name sits in a colored top band
	FooterBand  bool    `json:"footerBand"`  // sku/price sit in a colored bottom band
	Border      string  `json:"border"`      // "thin", "double", "none"
	AccentColor string  `json:"accentColor"` // hex
	TextColor   string  `json:"textColor"`   // hex
	LogoMaxCm   float64 `json:"logoMaxCm"`   // logo slot, square
}

// templateStyles is the closed template set.
var templateStyles = map[string]TemplateStyle{
	"classic": {
		ID: "classic", Border: "thin",
		AccentColor: "#059669", TextColor: "#1e293b", LogoMaxCm: 0.8,
	},
	"modernElegant": {
		ID: "modernElegant", HeaderBand: true, Border: "none",
		AccentColor: "#059669", TextColor: "#475569", LogoMaxCm: 0.6,
	},
	"premium": {
		ID: "premium", Border: "double",
		AccentColor: "#c9a961", TextColor: "#1a472a", LogoMaxCm: 0.5,
	},
	"minimalist": {
		ID: "minimalist", Border: "thin",
		AccentColor: "#059669", TextColor: "#0f172a", LogoMaxCm: 0.8,
	},
	"colorful": {
		ID: "colorful", HeaderBand: true, FooterBand: true, Border: "none",
		AccentColor: "#059669", TextColor: "#1e293b", LogoMaxCm: 0.6,
	},
}

// TemplateIDs returns the known template names.
func TemplateIDs() []string {
	return []string{"classic", "modernElegant", "premium", "minimalist", "colorful"}
}

// StyleFor returns the style for a template id, falling back to the
// default template for unknown names.
func StyleFor(id string) TemplateStyle {
	if style, ok := templateStyles[id]; ok {
		return style
	}
	return templateStyles[DefaultTemplate]
}

// BarcodeHints tells the rendering collaborator what to encode and how big
// to draw it. The payload is always the raw SKU; symbology (CODE128) is the
// renderer's concern.
type BarcodeHints struct {
	Payload  string `json:"payload"`
	WidthPx  int    `json:"widthPx"`
	HeightPx int    `json:"heightPx"`
}

// barcodeHeightPx matches the fixed bar height the original renderer used,
// leaving room for the text rows on small labels.
const barcodeHeightPx = 40

// LabelDescription is everything a renderer needs to draw one label:
// physical geometry, branding, the exact texts, and the barcode payload.
// It contains no markup.
type LabelDescription struct {
	Template     TemplateStyle `json:"template"`
	WidthCm      float64       `json:"widthCm"`
	HeightCm     float64       `json:"heightCm"`
	MarginTop    int           `json:"marginTopMm"`
	MarginRight  int           `json:"marginRightMm"`
	MarginBottom int           `json:"marginBottomMm"`
	MarginLeft   int           `json:"marginLeftMm"`
	FontSizePx   int           `json:"fontSizePx"`

	ShopName string `json:"shopName,omitempty"`
	ShowLogo bool   `json:"showLogo"`

	Name       string `json:"name"`
	NameFontPx int    `json:"nameFontPx"`
	PriceText  string `json:"priceText"`
	SKU        string `json:"sku"`

	Barcode BarcodeHints `json:"barcode"`
}

// BuildDescription combines a product with effective settings into a label
// description. It is total: any well-formed product and settings pair
// yields a description.
func BuildDescription(p *model.Product, eff model.EffectiveSettings) LabelDescription {
	name := Truncate(p.Name, maxNameLength)

	return LabelDescription{
		Template:     StyleFor(eff.LabelTemplate),
		WidthCm:      eff.LabelWidth,
		HeightCm:     eff.LabelHeight,
		MarginTop:    eff.MarginTop,
		MarginRight:  eff.MarginRight,
		MarginBottom: eff.MarginBottom,
		MarginLeft:   eff.MarginLeft,
		FontSizePx:   eff.FontSize,

		ShopName: eff.ShopName,
		ShowLogo: eff.ShowLogoOnLabel && eff.LogoAvailable,

		Name:       name,
		NameFontPx: AutoFontSize(name),
		PriceText:  p.Price.String() + " " + Currency,
		SKU:        p.SKU,

		Barcode: BarcodeHints{
			Payload:  p.SKU,
			WidthPx:  CmToPx(eff.LabelWidth*0.9, DefaultDPI),
			HeightPx: barcodeHeightPx,
		},
	}
}

// AutoFontSize picks a name font size so longer names still fit the label.
func AutoFontSize(text string) int {
	length := len([]rune(text))
	switch {
	case length <= 15:
		return 10
	case length <= 25:
		return 8
	case length <= 35:
		return 7
	default:
		return 6
	}
}

// Truncate shortens text to at most max runes, ending with an ellipsis.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
