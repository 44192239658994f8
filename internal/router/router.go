// Package router serves filtered list views as JSON.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hostelhub/hostelctl/internal/client"
	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/controller"
	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/listview"
	"github.com/hostelhub/hostelctl/internal/logger"
	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
	"github.com/hostelhub/hostelctl/internal/storage"
)

const paramPreset = "preset"

// Backend is the hostel API the views are read from.
type Backend interface {
	controller.Backend
	RequireAdmin(ctx context.Context) (client.User, error)
}

type router struct {
	backend Backend
	storage storage.Storage
	conf    *config.Config
	logger  *logger.Logger
	// base is handed to controllers, which tag their own component.
	base *logger.Logger
}

// ViewResponse is the body of GET /views/{kind}.
type ViewResponse struct {
	Kind    string          `json:"kind"`
	Filters filter.State    `json:"filters"`
	Total   int             `json:"total"`
	Count   int             `json:"count"`
	Records []record.Record `json:"records"`
}

type presetResponse struct {
	Name    string       `json:"name"`
	Filters filter.State `json:"filters"`
}

func New(backend Backend, stor storage.Storage, conf *config.Config, logger *logger.Logger) http.Handler {
	rt := &router{
		backend: backend,
		storage: stor,
		conf:    conf,
		logger:  logger.Component("router"),
		base:    logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(rt.logger))
	r.Use(middleware.Recoverer)
	r.Use(xFrameDenyHeaderMiddleware)

	r.Get("/healthz", rt.healthz)
	r.Route("/views", func(r chi.Router) {
		r.Get("/", rt.kinds)
		r.Get("/{kind}", rt.view)
		r.Get("/{kind}/presets", rt.presets)
	})

	return r
}

func (rt *router) healthz(w http.ResponseWriter, _ *http.Request) {
	rt.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *router) kinds(w http.ResponseWriter, _ *http.Request) {
	rt.writeJSON(w, http.StatusOK, map[string][]string{"kinds": resource.Names()})
}

func (rt *router) view(w http.ResponseWriter, r *http.Request) {
	kind, ok := rt.lookup(w, r)
	if !ok {
		return
	}

	if kind.AdminOnly {
		if _, err := rt.backend.RequireAdmin(r.Context()); err != nil {
			rt.writeError(w, err)
			return
		}
	}

	state := rt.conf.View(kind.Name).State()
	if name := r.URL.Query().Get(paramPreset); name != "" {
		preset, err := rt.storage.GetPreset(r.Context(), kind.Name, name)
		if err != nil {
			rt.writeError(w, err)
			return
		}
		state = preset.State()
	}
	state = filter.Overlay(state, r.URL.Query())

	ctrl := controller.New(kind, rt.backend, rt.base, listview.WithState(state))
	if err := ctrl.Refresh(r.Context()); err != nil {
		rt.writeError(w, err)
		return
	}

	view := ctrl.View()
	rt.writeJSON(w, http.StatusOK, ViewResponse{
		Kind:    kind.Name,
		Filters: ctrl.State(),
		Total:   ctrl.Total(),
		Count:   len(view),
		Records: view,
	})
}

func (rt *router) presets(w http.ResponseWriter, r *http.Request) {
	kind, ok := rt.lookup(w, r)
	if !ok {
		return
	}

	presets, err := rt.storage.ListPresets(r.Context(), kind.Name)
	if err != nil {
		rt.writeError(w, err)
		return
	}

	body := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		body = append(body, presetResponse{Name: p.Name(), Filters: p.State()})
	}
	rt.writeJSON(w, http.StatusOK, body)
}

func (rt *router) lookup(w http.ResponseWriter, r *http.Request) (resource.Kind, bool) {
	kind, err := resource.Lookup(chi.URLParam(r, "kind"))
	if err != nil {
		rt.writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
		return resource.Kind{}, false
	}

	return kind.WithSearchFields(rt.conf.View(kind.Name).SearchFields), true
}

func (rt *router) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway

	var notFound *storage.NotFoundError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.Is(err, client.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, client.ErrForbidden):
		status = http.StatusForbidden
	}

	rt.logger.Warn("Request failed", "status", status, "error", err.Error())
	rt.writeJSON(w, status, map[string]string{"message": err.Error()})
}

func (rt *router) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rt.logger.Error("Failed to encode response", "error", err.Error())
	}
}
