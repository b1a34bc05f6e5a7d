package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "folio/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Time     time.Time `json:"time"`
	Projects int       `json:"projects"`
	Visitors int       `json:"visitors"`
}

// Health is a simple readiness handler suitable for infrastructure probes.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{
		Status:   "ok",
		Time:     time.Now().UTC(),
		Projects: len(allProjects()),
	}
	if visitors != nil {
		resp.Visitors = visitors.Len()
	}

	writeJSON(w, r, http.StatusOK, resp)
	applog.Debug(r.Context(), "health check responded successfully")
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		applog.Error(r.Context(), "failed to encode json response", "error", err)
	}
}
