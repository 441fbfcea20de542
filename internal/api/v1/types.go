package v1

import (
	"encoding/json"
	"time"
)

// siteResponse is the API representation of a site.
type siteResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	URL       string    `json:"url,omitempty"`
	Priority  int       `json:"priority"`
	Cookie    string    `json:"cookie,omitempty"`
	UA        string    `json:"ua,omitempty"`
	Active    bool      `json:"active"`
	Note      string    `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// addSiteRequest is the body for POST /sites.
type addSiteRequest struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	URL      string `json:"url"`
	Priority *int   `json:"priority"`
	Cookie   string `json:"cookie"`
	UA       string `json:"ua"`
	Active   *bool  `json:"active"`
	Note     string `json:"note"`
}

// updateSiteRequest is the body for PUT /sites/{id}. Absent fields keep
// their current value.
type updateSiteRequest struct {
	Name     *string `json:"name"`
	Domain   *string `json:"domain"`
	URL      *string `json:"url"`
	Priority *int    `json:"priority"`
	Cookie   *string `json:"cookie"`
	UA       *string `json:"ua"`
	Active   *bool   `json:"active"`
	Note     *string `json:"note"`
}

// listSitesResponse is the response for GET /sites.
type listSitesResponse struct {
	Items []siteResponse `json:"items"`
	Total int            `json:"total"`
}

// transferResponse is the API representation of a transfer record.
type transferResponse struct {
	ID           int64  `json:"id"`
	Src          string `json:"src"`
	Dest         string `json:"dest"`
	Mode         string `json:"mode,omitempty"`
	Type         string `json:"type,omitempty"`
	Category     string `json:"category,omitempty"`
	Title        string `json:"title,omitempty"`
	Year         string `json:"year,omitempty"`
	TMDBID       int64  `json:"tmdb_id,omitempty"`
	Seasons      string `json:"seasons,omitempty"`
	Episodes     string `json:"episodes,omitempty"`
	Image        string `json:"image,omitempty"`
	DownloadHash string `json:"download_hash,omitempty"`
	Date         string `json:"date,omitempty"`
}

// downloadResponse is the API representation of a download record.
type downloadResponse struct {
	ID                 int64  `json:"id"`
	Path               string `json:"path"`
	Type               string `json:"type,omitempty"`
	Title              string `json:"title,omitempty"`
	Year               string `json:"year,omitempty"`
	TMDBID             int64  `json:"tmdb_id,omitempty"`
	Seasons            string `json:"seasons,omitempty"`
	Episodes           string `json:"episodes,omitempty"`
	Image              string `json:"image,omitempty"`
	DownloadHash       string `json:"download_hash,omitempty"`
	TorrentName        string `json:"torrent_name,omitempty"`
	TorrentDescription string `json:"torrent_description,omitempty"`
	TorrentSite        string `json:"torrent_site,omitempty"`
}

// listTransfersResponse is the response for GET /history/transfers.
type listTransfersResponse struct {
	Items []transferResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Count int                `json:"count"`
}

// listDownloadsResponse is the response for GET /history/downloads.
type listDownloadsResponse struct {
	Items []downloadResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Count int                `json:"count"`
}

// pluginResponse is one entry of GET /plugins.
type pluginResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Enabled     bool   `json:"enabled"`
}

// pluginDatumResponse is one entry of GET /plugins/{id}/data.
type pluginDatumResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// syncRunResponse is the response for POST /plugins/historysync/run.
type syncRunResponse struct {
	Status string `json:"status"`
}

// syncCategoryResponse is one category of a sync run summary.
type syncCategoryResponse struct {
	Category  string `json:"category"`
	Written   int    `json:"written"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

// syncStatusResponse is the response for GET /plugins/historysync/status.
type syncStatusResponse struct {
	Running    bool                   `json:"running"`
	RunID      string                 `json:"run_id,omitempty"`
	StartedAt  *time.Time             `json:"started_at,omitempty"`
	FinishedAt *time.Time             `json:"finished_at,omitempty"`
	Categories []syncCategoryResponse `json:"categories,omitempty"`
}

// EventResponse is the API representation of a logged event. Payload is the
// event's original JSON document, passed through untouched.
type EventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt string          `json:"occurred_at"`
}

// listEventsResponse is the response for GET /events.
type listEventsResponse struct {
	Items  []EventResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status      string `json:"status"`
	SyncRunning bool   `json:"sync_running"`
}
