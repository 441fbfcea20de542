package v1

import (
	"errors"
	"net/http"

	"github.com/helmarr/helmarr/internal/history"
)

func transferToResponse(r *history.TransferRecord) transferResponse {
	return transferResponse{
		ID:           r.ID,
		Src:          r.Src,
		Dest:         r.Dest,
		Mode:         r.Mode,
		Type:         r.Type,
		Category:     r.Category,
		Title:        r.Title,
		Year:         r.Year,
		TMDBID:       r.TMDBID,
		Seasons:      r.Seasons,
		Episodes:     r.Episodes,
		Image:        r.Image,
		DownloadHash: r.DownloadHash,
		Date:         r.Date,
	}
}

func downloadToResponse(r *history.DownloadRecord) downloadResponse {
	return downloadResponse{
		ID:                 r.ID,
		Path:               r.Path,
		Type:               r.Type,
		Title:              r.Title,
		Year:               r.Year,
		TMDBID:             r.TMDBID,
		Seasons:            r.Seasons,
		Episodes:           r.Episodes,
		Image:              r.Image,
		DownloadHash:       r.DownloadHash,
		TorrentName:        r.TorrentName,
		TorrentDescription: r.TorrentDescription,
		TorrentSite:        r.TorrentSite,
	}
}

func (s *Server) listTransferHistory(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	count := queryInt(r, "count", 30)

	records, total, err := s.deps.Transfers.List(page, count)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listTransfersResponse{
		Items: make([]transferResponse, len(records)),
		Total: total,
		Page:  page,
		Count: count,
	}
	for i, rec := range records {
		resp.Items[i] = transferToResponse(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listDownloadHistory(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	count := queryInt(r, "count", 30)

	records, total, err := s.deps.Downloads.List(page, count)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listDownloadsResponse{
		Items: make([]downloadResponse, len(records)),
		Total: total,
		Page:  page,
		Count: count,
	}
	for i, rec := range records {
		resp.Items[i] = downloadToResponse(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getDownloadByHash(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")
	record, err := s.deps.Downloads.GetByHash(hash)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "No download with that hash")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, downloadToResponse(record))
}
