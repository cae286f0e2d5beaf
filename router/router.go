// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/coastcamdb/cliparse"
	"github.com/danielhkuo/coastcamdb/handlers"
	"github.com/danielhkuo/coastcamdb/middleware"
	"github.com/danielhkuo/coastcamdb/record"
)

func NewRouter(store *record.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	siteHandler := handlers.NewSiteHandler(store, cfg)
	paramsHandler := handlers.NewParamsHandler(store, cfg)
	tableHandler := handlers.NewTableHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", siteHandler.Health)

	// Sites
	mux.HandleFunc("GET /sites", middleware.WithLogging(siteHandler.ListSites))
	mux.HandleFunc("GET /sites/{id}", middleware.WithLogging(siteHandler.GetSite))

	// Rectification parameters
	mux.HandleFunc("GET /stations/{id}/params", middleware.WithLogging(paramsHandler.GetStationParams))
	mux.HandleFunc("GET /params", middleware.WithLogging(paramsHandler.GetFilenameParams))

	// Raw rows
	mux.HandleFunc("GET /tables/{table}", middleware.WithLogging(tableHandler.ListRows))
	mux.HandleFunc("GET /tables/{table}/{key}", middleware.WithLogging(tableHandler.GetRow))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("coastcamdb API v1"))
	})

	return mux
}
