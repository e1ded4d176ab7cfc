package http

import (
	"net/http"

	"financepro/internal/core"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings core.Settings
	if err := readJSON(r, &settings); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := s.store.UpdateSettings(r.Context(), settings); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleGrantNotifications records that the platform granted notification
// permission. Nothing fires until settings enable alerts as well.
func (s *Server) handleGrantNotifications(w http.ResponseWriter, r *http.Request) {
	if s.trigger == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no notification sink configured"})
		return
	}
	s.trigger.GrantPermission()
	w.WriteHeader(http.StatusNoContent)
}
