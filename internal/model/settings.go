package model

// Settings is the stored settings record. Optional numeric and boolean
// fields are pointers so that an absent field can be told apart from a
// legitimate zero; label.Resolve fills whatever is missing with defaults.
type Settings struct {
	LabelWidth      *float64 `json:"labelWidth,omitempty"`  // cm
	LabelHeight     *float64 `json:"labelHeight,omitempty"` // cm
	PaperSize       string   `json:"paperSize,omitempty"`
	PaperType       string   `json:"paperType,omitempty"`
	MarginTop       *int     `json:"marginTop,omitempty"` // mm
	MarginRight     *int     `json:"marginRight,omitempty"`
	MarginBottom    *int     `json:"marginBottom,omitempty"`
	MarginLeft      *int     `json:"marginLeft,omitempty"`
	FontSize        *int     `json:"fontSize,omitempty"` // px
	LabelTemplate   string   `json:"labelTemplate,omitempty"`
	ShopName        string   `json:"shopName,omitempty"`
	ShowLogoOnLabel *bool    `json:"showLogoOnLabel,omitempty"`
}

// EffectiveSettings is a fully resolved settings record: every field is
// populated, either from the stored record or from the defaults.
type EffectiveSettings struct {
	LabelWidth  float64 `json:"labelWidth"`  // cm
	LabelHeight float64 `json:"labelHeight"` // cm
	PaperSize   string  `json:"paperSize"`
	PaperType   string  `json:"paperType"`
	// DimensionsLocked is true when a named paper preset dictates the
	// label dimensions, leaving them read-only for the caller.
	DimensionsLocked bool   `json:"dimensionsLocked"`
	MarginTop        int    `json:"marginTop"` // mm
	MarginRight      int    `json:"marginRight"`
	MarginBottom     int    `json:"marginBottom"`
	MarginLeft       int    `json:"marginLeft"`
	FontSize         int    `json:"fontSize"` // px
	LabelTemplate    string `json:"labelTemplate"`
	ShopName         string `json:"shopName"`
	ShowLogoOnLabel  bool   `json:"showLogoOnLabel"`
	// LogoAvailable is set by the caller from the logo store; a label only
	// shows the logo when it is both enabled and present.
	LogoAvailable bool `json:"logoAvailable"`
}

// Stored converts an effective record back into the stored representation,
// with every field present.
func (e EffectiveSettings) Stored() Settings {
	return Settings{
		LabelWidth:      &e.LabelWidth,
		LabelHeight:     &e.LabelHeight,
		PaperSize:       e.PaperSize,
		PaperType:       e.PaperType,
		MarginTop:       &e.MarginTop,
		MarginRight:     &e.MarginRight,
		MarginBottom:    &e.MarginBottom,
		MarginLeft:      &e.MarginLeft,
		FontSize:        &e.FontSize,
		LabelTemplate:   e.LabelTemplate,
		ShopName:        e.ShopName,
		ShowLogoOnLabel: &e.ShowLogoOnLabel,
	}
}
