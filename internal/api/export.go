package api

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aldeenj/veilflow/internal/label"
	"github.com/aldeenj/veilflow/internal/store"
)

// ExportHandler handles backup, restore and reset endpoints.
type ExportHandler struct {
	DB *sql.DB
}

// confirmHeader must be sent on destructive endpoints. Requiring it keeps
// the user-confirmation boundary at the caller while making an accidental
// curl harmless.
const confirmHeader = "X-Confirm"

// Export handles GET /api/export, producing the full backup snapshot. The
// settings are written fully resolved, so the backup file documents every
// value in effect rather than only the overrides.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := store.Export(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to export data")
		return
	}

	if snapshot.Settings != nil {
		full := label.Resolve(*snapshot.Settings).Stored()
		snapshot.Settings = &full
	}

	w.Header().Set("Content-Disposition", `attachment; filename="veilflow-backup.json"`)
	jsonResponse(w, http.StatusOK, snapshot)
}

// Import handles POST /api/import. Each top-level key present in the
// snapshot replaces the stored data wholesale; the whole import is
// all-or-nothing.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(confirmHeader) != "replace" {
		jsonError(w, http.StatusPreconditionRequired, "import replaces stored data; set X-Confirm: replace")
		return
	}

	// Snapshots with embedded logos stay small; 20 MB is generous.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 20<<20))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	defer r.Body.Close()

	if err := store.Import(r.Context(), h.DB, body); err != nil {
		var parseErr *store.ParseError
		if errors.As(err, &parseErr) {
			jsonError(w, http.StatusBadRequest, "malformed snapshot: "+parseErr.Error())
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to import data")
		return
	}

	slog.Info("snapshot imported", "user", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "data imported"})
}

// Reset handles POST /api/reset, wiping all labeling data.
func (h *ExportHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(confirmHeader) != "replace" {
		jsonError(w, http.StatusPreconditionRequired, "reset wipes stored data; set X-Confirm: replace")
		return
	}

	if err := store.Reset(r.Context(), h.DB); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to reset data")
		return
	}

	slog.Info("store reset", "user", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "data reset"})
}
