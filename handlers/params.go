// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/coastcamdb/cliparse"
	"github.com/danielhkuo/coastcamdb/middleware"
	"github.com/danielhkuo/coastcamdb/params"
	"github.com/danielhkuo/coastcamdb/record"
)

type ParamsHandler struct {
	store *record.Store
	cfg   cliparse.Config
}

func NewParamsHandler(store *record.Store, cfg cliparse.Config) *ParamsHandler {
	return &ParamsHandler{store: store, cfg: cfg}
}

// GetStationParams handles GET /stations/{id}/params?time=
func (h *ParamsHandler) GetStationParams(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	timeStr := r.URL.Query().Get("time")
	if timeStr == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "time is required")
		return
	}
	unixTime, err := strconv.ParseInt(timeStr, 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "time must be a unix timestamp")
		return
	}

	p, err := params.ForStation(r.Context(), h.store, stationID, unixTime)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// GetFilenameParams handles GET /params?filename=
func (h *ParamsHandler) GetFilenameParams(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "filename is required")
		return
	}

	p, err := params.FromFilename(r.Context(), h.store, filename)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}
