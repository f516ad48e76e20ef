// Package rest exposes the dashboard view model to the render layer as
// a small read-only JSON API.
package rest

import (
	"net/http"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/services"
)

// Handler manages the HTTP interface for the dashboard pipeline.
type Handler struct {
	svc    *services.Dashboard
	router *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Dashboard) *Handler {
	h := &Handler{
		svc:    svc,
		router: http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies http.Handler by delegating to the internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("GET /dashboard", h.Dashboard)
	h.router.HandleFunc("GET /status", h.Status)
	h.router.HandleFunc("POST /refresh", h.Refresh)
}

// HealthCheck reports the service's own liveness plus the backend
// connection state.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.svc.State().String(),
	})
}

// Dashboard returns the full current view model.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ViewModel())
}
