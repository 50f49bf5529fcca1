package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a registered retail product with its assigned SKU.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Fabric    string          `json:"fabric"`
	SKU       string          `json:"sku"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Category codes.
const (
	CategoryNiqab       = "V"
	CategoryStyle       = "S"
	CategoryAccessories = "A"
	CategoryAbaya       = "C"
)

// Fabric codes.
const (
	FabricPlain     = "F"
	FabricCotton    = "C"
	FabricSilk      = "S"
	FabricPolyester = "P"
	FabricBlend     = "M"
)

// categoryNames maps category codes to display names.
var categoryNames = map[string]string{
	CategoryNiqab:       "نقاب",
	CategoryStyle:       "ستايل",
	CategoryAccessories: "إكسسوارات",
	CategoryAbaya:       "عباءات",
}

// fabricNames maps fabric codes to display names.
var fabricNames = map[string]string{
	FabricPlain:     "قماش عادي",
	FabricCotton:    "قطن",
	FabricSilk:      "حرير",
	FabricPolyester: "بوليستر",
	FabricBlend:     "مخلوط",
}

// CategoryCodes returns the category codes in display order.
func CategoryCodes() []string {
	return []string{CategoryNiqab, CategoryStyle, CategoryAccessories, CategoryAbaya}
}

// FabricCodes returns the fabric codes in display order.
func FabricCodes() []string {
	return []string{FabricPlain, FabricCotton, FabricSilk, FabricPolyester, FabricBlend}
}

// ValidCategory reports whether code is a known category code.
func ValidCategory(code string) bool {
	_, ok := categoryNames[code]
	return ok
}

// ValidFabric reports whether code is a known fabric code.
func ValidFabric(code string) bool {
	_, ok := fabricNames[code]
	return ok
}

// CategoryName returns the display name for a category code,
// or the code itself if unknown.
func CategoryName(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return code
}

// FabricName returns the display name for a fabric code,
// or the code itself if unknown.
func FabricName(code string) string {
	if name, ok := fabricNames[code]; ok {
		return name
	}
	return code
}

// ValidationError describes a rejected product field. No partial product
// is ever persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateProduct checks the user-supplied product fields. The name is
// trimmed in place before validation.
func ValidateProduct(p *Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if !ValidCategory(p.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category code"}
	}
	if !ValidFabric(p.Fabric) {
		return &ValidationError{Field: "fabric", Reason: "unknown fabric code"}
	}
	return nil
}
