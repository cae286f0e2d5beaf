// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/coastcamdb/cliparse"
	"github.com/danielhkuo/coastcamdb/middleware"
	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
)

type TableHandler struct {
	store *record.Store
	cfg   cliparse.Config
}

func NewTableHandler(store *record.Store, cfg cliparse.Config) *TableHandler {
	return &TableHandler{store: store, cfg: cfg}
}

// ListRows handles GET /tables/{table}
// An optional column/value query pair filters the rows
func (h *TableHandler) ListRows(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	column := r.URL.Query().Get("column")

	var value any
	if column != "" {
		v, err := schema.ParseText(table, column, r.URL.Query().Get("value"))
		if err != nil {
			writeError(w, err)
			return
		}
		value = v
	}

	rows, err := h.store.Rows(r.Context(), table, column, value)
	if err != nil {
		writeError(w, err)
		return
	}
	if rows == nil {
		rows = []record.Row{}
	}
	middleware.JSONResponse(w, http.StatusOK, rows)
}

// GetRow handles GET /tables/{table}/{key}
// The key is an id, or a seq for geometry and usedgcp
func (h *TableHandler) GetRow(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	kind, err := schema.IdentityOf(table)
	if err != nil {
		writeError(w, err)
		return
	}

	key, err := record.ParseKey(kind, r.PathValue("key"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.store.Row(r.Context(), table, key)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, row)
}
