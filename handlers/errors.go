// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/coastcamdb/middleware"
	"github.com/danielhkuo/coastcamdb/params"
	"github.com/danielhkuo/coastcamdb/record"
	"github.com/danielhkuo/coastcamdb/schema"
)

// writeError maps engine errors onto status codes. Anything unrecognised
// is logged and reported as a database error.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schema.ErrUnknownTable),
		errors.Is(err, schema.ErrUnknownColumn),
		errors.Is(err, record.ErrNoMatchingID),
		errors.Is(err, record.ErrNoMatchingSeq),
		errors.Is(err, params.ErrNoStationMatch):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, params.ErrBadFilename),
		errors.Is(err, schema.ErrBadText),
		errors.Is(err, record.ErrInvalidID):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
