package api

import (
	"database/sql"
	"net/http"

	"github.com/aldeenj/veilflow/internal/model"
	"github.com/aldeenj/veilflow/internal/store"
)

// StatsHandler handles print-statistics endpoints.
type StatsHandler struct {
	DB *sql.DB
}

type recordPrintsRequest struct {
	Count int64 `json:"count"`
}

type statsResponse struct {
	model.PrintStats
	TotalProducts int64 `json:"totalProducts"`
}

// Get handles GET /api/stats. Reading applies the day rollover, so a new
// day shows zero today-prints before anything is printed. The product count
// rides along for the dashboard.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	count, err := store.CountProducts(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count products")
		return
	}

	jsonResponse(w, http.StatusOK, statsResponse{PrintStats: *stats, TotalProducts: count})
}

// RecordPrints handles POST /api/prints, bumping the counters after a
// print batch. A missing count defaults to one label.
func (h *StatsHandler) RecordPrints(w http.ResponseWriter, r *http.Request) {
	var req recordPrintsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	if req.Count < 0 {
		jsonError(w, http.StatusBadRequest, "count must be positive")
		return
	}

	if err := store.RecordPrint(r.Context(), h.DB, req.Count); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to record prints")
		return
	}

	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	count, err := store.CountProducts(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count products")
		return
	}

	jsonResponse(w, http.StatusOK, statsResponse{PrintStats: *stats, TotalProducts: count})
}
