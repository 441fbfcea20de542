package v1

import "net/http"

// requireHistorySync wraps a handler and returns 503 if the history sync
// plugin is not configured.
func (s *Server) requireHistorySync(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.HistorySync == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "History sync plugin not configured")
			return
		}
		next(w, r)
	}
}

// requirePluginConfig wraps a handler and returns 503 if the plugin config
// store is not configured.
func (s *Server) requirePluginConfig(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.PluginConfig == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Plugin config store not configured")
			return
		}
		next(w, r)
	}
}

// requireEventLog wraps a handler and returns 503 if the event log is not
// configured.
func (s *Server) requireEventLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.EventLog == nil {
			writeError(w, http.StatusServiceUnavailable, "NO_EVENT_LOG", "Event log not configured")
			return
		}
		next(w, r)
	}
}
