package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the helmarr server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new helmarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) send(method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) post(path string, body any, result any) error {
	return c.send(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.send(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	return c.send(http.MethodDelete, path, nil, nil)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status      string `json:"status"`
	SyncRunning bool   `json:"sync_running"`
}

type SiteResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	URL       string `json:"url,omitempty"`
	Priority  int    `json:"priority"`
	Active    bool   `json:"active"`
	Note      string `json:"note,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type ListSitesResponse struct {
	Items []SiteResponse `json:"items"`
	Total int            `json:"total"`
}

type AddSiteRequest struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	URL      string `json:"url,omitempty"`
	Priority *int   `json:"priority,omitempty"`
	Active   *bool  `json:"active,omitempty"`
	Note     string `json:"note,omitempty"`
}

type PluginResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Enabled     bool   `json:"enabled"`
}

type SyncRunRequest struct {
	Clear         bool   `json:"clear"`
	Transfer      bool   `json:"transfer"`
	Plugin        bool   `json:"plugin"`
	Download      bool   `json:"download"`
	SourcePath    string `json:"source_path"`
	PathMap       string `json:"path_map,omitempty"`
	DownloaderMap string `json:"downloader_map,omitempty"`
	SiteMap       string `json:"site_map,omitempty"`
}

type SyncRunResponse struct {
	Status string `json:"status"`
}

type SyncCategoryResponse struct {
	Category  string `json:"category"`
	Written   int    `json:"written"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

type SyncStatusResponse struct {
	Running    bool                   `json:"running"`
	RunID      string                 `json:"run_id,omitempty"`
	StartedAt  *string                `json:"started_at,omitempty"`
	FinishedAt *string                `json:"finished_at,omitempty"`
	Categories []SyncCategoryResponse `json:"categories,omitempty"`
}

type TransferResponse struct {
	ID           int64  `json:"id"`
	Src          string `json:"src"`
	Dest         string `json:"dest"`
	Mode         string `json:"mode,omitempty"`
	Type         string `json:"type,omitempty"`
	Title        string `json:"title,omitempty"`
	Year         string `json:"year,omitempty"`
	Seasons      string `json:"seasons,omitempty"`
	Episodes     string `json:"episodes,omitempty"`
	DownloadHash string `json:"download_hash,omitempty"`
	Date         string `json:"date,omitempty"`
}

type ListTransfersResponse struct {
	Items []TransferResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Count int                `json:"count"`
}

type DownloadResponse struct {
	ID           int64  `json:"id"`
	Path         string `json:"path"`
	Type         string `json:"type,omitempty"`
	Title        string `json:"title,omitempty"`
	Year         string `json:"year,omitempty"`
	DownloadHash string `json:"download_hash,omitempty"`
	TorrentName  string `json:"torrent_name,omitempty"`
	TorrentSite  string `json:"torrent_site,omitempty"`
}

type ListDownloadsResponse struct {
	Items []DownloadResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Count int                `json:"count"`
}

type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	OccurredAt string `json:"occurred_at"`
}

type ListEventsResponse struct {
	Items  []EventResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Sites() (*ListSitesResponse, error) {
	var resp ListSitesResponse
	if err := c.get("/api/v1/sites", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddSite(req *AddSiteRequest) (*SiteResponse, error) {
	var resp SiteResponse
	if err := c.post("/api/v1/sites", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteSite(id int64) error {
	return c.delete(fmt.Sprintf("/api/v1/sites/%d", id))
}

func (c *Client) ResetSites() error {
	return c.post("/api/v1/sites/reset", nil, nil)
}

func (c *Client) Plugins() ([]PluginResponse, error) {
	var resp []PluginResponse
	if err := c.get("/api/v1/plugins", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SyncRun triggers an import run. A nil request reuses the settings
// stored on the server.
func (c *Client) SyncRun(req *SyncRunRequest) (*SyncRunResponse, error) {
	var body any
	if req != nil {
		body = req
	}
	var resp SyncRunResponse
	if err := c.post("/api/v1/plugins/historysync/run", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SyncStatus() (*SyncStatusResponse, error) {
	var resp SyncStatusResponse
	if err := c.get("/api/v1/plugins/historysync/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Transfers(page, count int) (*ListTransfersResponse, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprint(page))
	params.Set("count", fmt.Sprint(count))
	var resp ListTransfersResponse
	if err := c.get("/api/v1/history/transfers?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Downloads(page, count int) (*ListDownloadsResponse, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprint(page))
	params.Set("count", fmt.Sprint(count))
	var resp ListDownloadsResponse
	if err := c.get("/api/v1/history/downloads?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Events(eventType string, limit int) (*ListEventsResponse, error) {
	path := fmt.Sprintf("/api/v1/events?limit=%d", limit)
	if eventType != "" {
		path += "&type=" + url.QueryEscape(eventType)
	}
	var resp ListEventsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
