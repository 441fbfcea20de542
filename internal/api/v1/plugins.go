package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/helmarr/helmarr/internal/plugin"
	"github.com/helmarr/helmarr/internal/syncer"
)

func (s *Server) listPlugins(w http.ResponseWriter, r *http.Request) {
	plugins := s.deps.Plugins.List()
	resp := make([]pluginResponse, len(plugins))
	for i, p := range plugins {
		meta := p.Meta()
		resp[i] = pluginResponse{
			ID:          meta.ID,
			Name:        meta.Name,
			Description: meta.Description,
			Version:     meta.Version,
			Enabled:     p.Enabled(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getPluginForm(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Plugins.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	form, err := p.Form()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "FORM_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// getPluginConfig returns the persisted configuration document for a plugin.
func (s *Server) getPluginConfig(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Plugins.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	raw, err := s.deps.PluginConfig.Load(p.Meta().ID)
	if err != nil {
		if errors.Is(err, plugin.ErrNoConfig) {
			writeError(w, http.StatusNotFound, "NO_CONFIG", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(raw))
}

// updatePluginConfig re-initializes a plugin with the posted configuration
// document and persists it only if the plugin accepts it.
func (s *Server) updatePluginConfig(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Plugins.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "body must be a JSON document")
		return
	}

	if err := p.Init(body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_CONFIG", err.Error())
		return
	}
	if s.deps.PluginConfig != nil {
		if err := s.deps.PluginConfig.Save(p.Meta().ID, json.RawMessage(body)); err != nil {
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPluginData(w http.ResponseWriter, r *http.Request) {
	if _, err := s.deps.Plugins.Get(r.PathValue("id")); err != nil {
		if errors.Is(err, plugin.ErrUnknownPlugin) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "PLUGIN_ERROR", err.Error())
		return
	}

	data, err := s.deps.PluginData.ListByPlugin(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	resp := make([]pluginDatumResponse, len(data))
	for i, d := range data {
		resp[i] = pluginDatumResponse{Key: d.Key, Value: d.Value}
	}
	writeJSON(w, http.StatusOK, resp)
}

// triggerSync starts a history import in the background. An optional body
// overrides the plugin's current settings for this run.
func (s *Server) triggerSync(w http.ResponseWriter, r *http.Request) {
	settings := s.deps.HistorySync.Settings()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &settings); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
	}

	switch err := s.deps.HistorySync.Trigger(settings); {
	case err == nil:
		writeJSON(w, http.StatusAccepted, syncRunResponse{Status: "started"})
	case errors.Is(err, syncer.ErrAlreadyRunning):
		writeError(w, http.StatusConflict, "ALREADY_RUNNING", "An import run is already in progress")
	default:
		writeError(w, http.StatusBadRequest, "INVALID_SETTINGS", err.Error())
	}
}

func (s *Server) syncStatus(w http.ResponseWriter, r *http.Request) {
	status := s.deps.HistorySync.Status()
	resp := syncStatusResponse{Running: status.Running}
	if status.LastRun != nil {
		run := status.LastRun
		resp.RunID = run.RunID.String()
		resp.StartedAt = &run.StartedAt
		resp.FinishedAt = &run.FinishedAt
		resp.Categories = make([]syncCategoryResponse, len(run.Categories))
		for i, c := range run.Categories {
			resp.Categories[i] = syncCategoryResponse{
				Category:  string(c.Category),
				Written:   c.Written,
				Skipped:   c.Skipped,
				Failed:    c.Failed,
				ElapsedMS: c.Elapsed.Milliseconds(),
			}
			if c.Err != nil {
				resp.Categories[i].Error = c.Err.Error()
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
