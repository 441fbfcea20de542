package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/helmarr/helmarr/internal/site"
)

func siteToResponse(s *site.Site) siteResponse {
	return siteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Domain:    s.Domain,
		URL:       s.URL,
		Priority:  s.Priority,
		Cookie:    s.Cookie,
		UA:        s.UA,
		Active:    s.Active,
		Note:      s.Note,
		UpdatedAt: s.UpdatedAt,
	}
}

func (s *Server) listSites(w http.ResponseWriter, r *http.Request) {
	sites, err := s.deps.Sites.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listSitesResponse{
		Items: make([]siteResponse, len(sites)),
		Total: len(sites),
	}
	for i, st := range sites {
		resp.Items[i] = siteToResponse(st)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	st, err := s.deps.Sites.Get(id)
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Site not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, siteToResponse(st))
}

func (s *Server) getSiteByDomain(w http.ResponseWriter, r *http.Request) {
	st, err := s.deps.Sites.GetByDomain(r.PathValue("domain"))
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Site not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, siteToResponse(st))
}

func (s *Server) addSite(w http.ResponseWriter, r *http.Request) {
	var req addSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Domain) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_SITE", "name and domain are required")
		return
	}

	st := &site.Site{
		Name:     req.Name,
		Domain:   req.Domain,
		URL:      req.URL,
		Priority: 1,
		Cookie:   req.Cookie,
		UA:       req.UA,
		Active:   true,
		Note:     req.Note,
	}
	if req.Priority != nil {
		st.Priority = *req.Priority
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if err := s.deps.Sites.Add(st); err != nil {
		if errors.Is(err, site.ErrDuplicate) {
			writeError(w, http.StatusConflict, "DUPLICATE", "Site domain already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, siteToResponse(st))
}

func (s *Server) updateSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req updateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	st, err := s.deps.Sites.Get(id)
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Site not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Domain != nil {
		st.Domain = *req.Domain
	}
	if req.URL != nil {
		st.URL = *req.URL
	}
	if req.Priority != nil {
		st.Priority = *req.Priority
	}
	if req.Cookie != nil {
		st.Cookie = *req.Cookie
	}
	if req.UA != nil {
		st.UA = *req.UA
	}
	if req.Active != nil {
		st.Active = *req.Active
	}
	if req.Note != nil {
		st.Note = *req.Note
	}

	if err := s.deps.Sites.Update(st); err != nil {
		if errors.Is(err, site.ErrDuplicate) {
			writeError(w, http.StatusConflict, "DUPLICATE", "Site domain already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, siteToResponse(st))
}

func (s *Server) deleteSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	if err := s.deps.Sites.Delete(id); err != nil {
		if errors.Is(err, site.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Site not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetSites(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Sites.Reset(); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
