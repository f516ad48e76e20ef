package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/domain"
)

type statusResponse struct {
	Connection  string    `json:"connection"`
	LastChecked time.Time `json:"last_checked"`
	HasData     bool      `json:"has_data"`
	TrackCount  int       `json:"track_count"`
	SnapshotID  string    `json:"snapshot_id"`
	HealthError string    `json:"health_error,omitempty"`
	FetchError  string    `json:"fetch_error,omitempty"`
}

// Status reports connection and snapshot detail, the moral equivalent
// of the backend's own /cache-status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	vm := h.svc.ViewModel()
	writeJSON(w, http.StatusOK, statusResponse{
		Connection:  vm.Connection,
		LastChecked: vm.LastChecked,
		HasData:     len(vm.Tracks) > 0 || vm.Summary != nil,
		TrackCount:  len(vm.Tracks),
		SnapshotID:  vm.SnapshotID,
		HealthError: vm.HealthError,
		FetchError:  vm.FetchError,
	})
}

// Refresh forces an immediate snapshot refresh, the retry action behind
// the dashboard's connectivity banner. 409 when the backend is not
// connected, since the fetches would be no-ops.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.svc.State() != domain.Connected {
		writeError(w, http.StatusConflict, "backend not connected")
		return
	}

	// Detach from the request context: the fetches outlive this request.
	go h.svc.RefreshSnapshot(context.WithoutCancel(r.Context()))
	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "refresh initiated",
		"status":  "processing",
	})
}
