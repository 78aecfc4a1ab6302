package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// LivenessHandler returns an HTTP handler for liveness probes. It only
// confirms the host process is serving; the external service's state is
// reported by StatusHandler.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// StatusResponse is the JSON body served by StatusHandler.
type StatusResponse struct {
	Available bool   `json:"available"`
	Status    string `json:"status,omitempty"`
	Health    string `json:"health"`
	Message   string `json:"message,omitempty"`
	CheckedAt string `json:"checked_at,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Error     string `json:"error,omitempty"`
}

// StatusHandler returns an HTTP handler serving the poller's cached view
// of the external service. It never probes on request: the response
// reflects the last background refresh. Returns 503 when the service is
// unreachable.
func StatusHandler(p *Poller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		last := p.Last()
		status, _ := p.Status()

		response := StatusResponse{
			Available: p.Available(),
			Status:    status,
			Health:    last.Status.String(),
			Message:   last.Message,
		}
		if !last.Timestamp.IsZero() {
			response.CheckedAt = last.Timestamp.UTC().Format(time.RFC3339)
		}
		if last.Duration > 0 {
			response.Duration = last.Duration.String()
		}
		if last.Error != nil {
			response.Error = last.Error.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		if response.Available {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(response)
	}
}

// RegisterHandlers registers the health handlers on the given mux.
func RegisterHandlers(mux *http.ServeMux, p *Poller) {
	mux.HandleFunc("/healthz", LivenessHandler())
	mux.HandleFunc("/status", StatusHandler(p))
}
