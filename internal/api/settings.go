package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/aldeenj/veilflow/internal/imaging"
	"github.com/aldeenj/veilflow/internal/label"
	"github.com/aldeenj/veilflow/internal/model"
	"github.com/aldeenj/veilflow/internal/store"
)

// SettingsHandler handles settings and shop-logo endpoints.
type SettingsHandler struct {
	DB *sql.DB
}

// Get handles GET /api/settings, returning the fully resolved record.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	jsonResponse(w, http.StatusOK, eff)
}

// Update handles PUT /api/settings. Fields absent from the body keep their
// stored values; when the chosen paper size is a preset, submitted
// dimensions are ignored in favor of the preset's.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.Settings
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.LabelWidth != nil && *patch.LabelWidth <= 0 {
		jsonError(w, http.StatusBadRequest, "label width must be positive")
		return
	}
	if patch.LabelHeight != nil && *patch.LabelHeight <= 0 {
		jsonError(w, http.StatusBadRequest, "label height must be positive")
		return
	}
	if patch.FontSize != nil && *patch.FontSize <= 0 {
		jsonError(w, http.StatusBadRequest, "font size must be positive")
		return
	}

	merged, err := store.UpdateSettings(r.Context(), h.DB, patch)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	eff := label.Resolve(merged)
	eff.LogoAvailable, err = store.HasLogo(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to check logo")
		return
	}

	jsonResponse(w, http.StatusOK, eff)
}

type codeOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type paperOption struct {
	ID string `json:"id"`
	label.Dimensions
}

type optionsResponse struct {
	PaperSizes []paperOption         `json:"paperSizes"`
	Templates  []label.TemplateStyle `json:"templates"`
	Categories []codeOption          `json:"categories"`
	Fabrics    []codeOption          `json:"fabrics"`
}

// Options handles GET /api/settings/options: the closed choice sets the
// settings and product forms offer (paper presets, templates, category and
// fabric codes with their display names).
func (h *SettingsHandler) Options(w http.ResponseWriter, r *http.Request) {
	resp := optionsResponse{}

	for _, key := range label.PaperPresetKeys() {
		dims, _ := label.PaperPreset(key)
		resp.PaperSizes = append(resp.PaperSizes, paperOption{ID: key, Dimensions: dims})
	}
	for _, id := range label.TemplateIDs() {
		resp.Templates = append(resp.Templates, label.StyleFor(id))
	}
	for _, code := range model.CategoryCodes() {
		resp.Categories = append(resp.Categories, codeOption{Code: code, Name: model.CategoryName(code)})
	}
	for _, code := range model.FabricCodes() {
		resp.Fabrics = append(resp.Fabrics, codeOption{Code: code, Name: model.FabricName(code)})
	}

	jsonResponse(w, http.StatusOK, resp)
}

// Reset handles POST /api/settings/reset, restoring defaults and dropping
// the shop logo.
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := store.ResetSettings(r.Context(), h.DB); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to reset settings")
		return
	}
	slog.Info("settings reset to defaults", "user", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusOK, label.Resolve(model.Settings{}))
}

// PageSize handles GET /api/settings/page-size, the physical page directive
// for the print-styling collaborator. ?dpi= overrides the default print
// resolution.
func (h *SettingsHandler) PageSize(w http.ResponseWriter, r *http.Request) {
	stored, err := store.GetSettings(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}

	dpi := queryInt(r, "dpi", label.DefaultDPI)
	jsonResponse(w, http.StatusOK, label.PageSizeFor(label.Resolve(stored), dpi))
}

// UploadLogo handles PUT /api/settings/logo.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("logo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "logo file required")
		return
	}
	defer file.Close()

	result, err := imaging.ProcessLogo(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetLogo(r.Context(), h.DB, result.Data, result.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save logo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "logo uploaded"})
}

// GetLogo handles GET /api/settings/logo.
func (h *SettingsHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetLogo(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get logo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no logo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// DeleteLogo handles DELETE /api/settings/logo.
func (h *SettingsHandler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteLogo(r.Context(), h.DB); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete logo")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logo deleted"})
}
