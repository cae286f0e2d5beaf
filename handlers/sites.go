// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/coastcamdb/cliparse"
	"github.com/danielhkuo/coastcamdb/middleware"
	"github.com/danielhkuo/coastcamdb/models"
	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
)

type SiteHandler struct {
	store *record.Store
	cfg   cliparse.Config
}

func NewSiteHandler(store *record.Store, cfg cliparse.Config) *SiteHandler {
	return &SiteHandler{store: store, cfg: cfg}
}

// Health handles GET /health
func (h *SiteHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Conn().PingContext(r.Context()); err != nil {
		middleware.JSONResponse(w, http.StatusServiceUnavailable, models.HealthResponse{
			Status:   "unavailable",
			Database: h.cfg.DatabaseType,
		})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Database: h.cfg.DatabaseType,
	})
}

// ListSites handles GET /sites
func (h *SiteHandler) ListSites(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Rows(r.Context(), schema.Site, "", nil)
	if err != nil {
		writeError(w, err)
		return
	}

	sites := []models.SiteSummary{}
	for _, row := range rows {
		sites = append(sites, models.SiteSummary{
			ID:   row.String("id"),
			Name: row.String("name"),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, sites)
}

// GetSite handles GET /sites/{id}
// Returns every row reachable from the site, grouped by table
func (h *SiteHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	siteID := r.PathValue("id")
	if siteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "site id is required")
		return
	}

	rec, err := h.store.Site(r.Context(), siteID)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rec)
}
