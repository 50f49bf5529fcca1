package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aldeenj/veilflow/internal/barcode"
	"github.com/aldeenj/veilflow/internal/label"
	"github.com/aldeenj/veilflow/internal/store"
)

// LabelsHandler serves label descriptions and barcode images.
type LabelsHandler struct {
	DB *sql.DB
}

// GetLabel handles GET /api/products/{id}/label: the complete renderable
// label description for the product under current settings.
func (h *LabelsHandler) GetLabel(w http.ResponseWriter, r *http.Request) {
	product, err := store.GetProduct(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if product == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	stored, err := store.GetSettings(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	eff := label.Resolve(stored)
	eff.LogoAvailable, err = store.HasLogo(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to check logo")
		return
	}

	jsonResponse(w, http.StatusOK, label.BuildDescription(product, eff))
}

// GetBarcode handles GET /api/products/{id}/barcode.png, rendering the
// product's SKU as CODE128. Optional width and height query parameters
// override the layout engine's size hints. If rendering fails, a blank
// placeholder image is served instead so label pages still lay out.
func (h *LabelsHandler) GetBarcode(w http.ResponseWriter, r *http.Request) {
	product, err := store.GetProduct(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if product == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	stored, err := store.GetSettings(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	hints := label.BuildDescription(product, label.Resolve(stored)).Barcode

	width := queryInt(r, "width", hints.WidthPx)
	height := queryInt(r, "height", hints.HeightPx)

	data, err := barcode.RenderPNG(hints.Payload, width, height)
	if err != nil {
		slog.Warn("barcode rendering failed, serving placeholder",
			"sku", product.SKU, "error", err)
		data, err = barcode.PlaceholderPNG(width, height)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to render barcode")
			return
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// queryInt reads an integer query parameter, falling back on absence or
// garbage.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
