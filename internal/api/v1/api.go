// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
}

// New creates a new v1 API server.
func New(deps ServerDeps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	return &Server{deps: deps}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Sites
	mux.HandleFunc("GET /api/v1/sites", s.listSites)
	mux.HandleFunc("POST /api/v1/sites", s.addSite)
	mux.HandleFunc("GET /api/v1/sites/{id}", s.getSite)
	mux.HandleFunc("GET /api/v1/sites/domain/{domain}", s.getSiteByDomain)
	mux.HandleFunc("PUT /api/v1/sites/{id}", s.updateSite)
	mux.HandleFunc("DELETE /api/v1/sites/{id}", s.deleteSite)
	mux.HandleFunc("POST /api/v1/sites/reset", s.resetSites)

	// Plugins
	mux.HandleFunc("GET /api/v1/plugins", s.listPlugins)
	mux.HandleFunc("GET /api/v1/plugins/{id}/form", s.getPluginForm)
	mux.HandleFunc("GET /api/v1/plugins/{id}/config", s.requirePluginConfig(s.getPluginConfig))
	mux.HandleFunc("PUT /api/v1/plugins/{id}/config", s.updatePluginConfig)
	mux.HandleFunc("POST /api/v1/plugins/historysync/run", s.requireHistorySync(s.triggerSync))
	mux.HandleFunc("GET /api/v1/plugins/historysync/status", s.requireHistorySync(s.syncStatus))
	mux.HandleFunc("GET /api/v1/plugins/{id}/data", s.listPluginData)

	// History
	mux.HandleFunc("GET /api/v1/history/transfers", s.listTransferHistory)
	mux.HandleFunc("GET /api/v1/history/downloads", s.listDownloadHistory)
	mux.HandleFunc("GET /api/v1/history/downloads/{hash}", s.getDownloadByHash)

	// System
	mux.HandleFunc("GET /api/v1/events", s.requireEventLog(s.listEvents))
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: id")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Status: "ok"}
	if s.deps.HistorySync != nil {
		resp.SyncRunning = s.deps.HistorySync.Status().Running
	}
	writeJSON(w, http.StatusOK, resp)
}
