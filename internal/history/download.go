package history

import (
	"fmt"
)

// DownloadRecord is one download-task outcome.
type DownloadRecord struct {
	ID                 int64
	Path               string // basename of the original save path
	Type               string // movie, series
	Title              string
	Year               string
	TMDBID             int64
	Seasons            string
	Episodes           string
	Image              string
	DownloadHash       string
	TorrentName        string
	TorrentDescription string
	TorrentSite        string
}

// DownloadStore persists download-history records. Same create-only pattern
// as TransferStore.
type DownloadStore struct {
	db querier
}

// NewDownloadStore creates a download-history store.
func NewDownloadStore(db querier) *DownloadStore {
	return &DownloadStore{db: db}
}

// Append inserts a new download record and sets its ID.
func (s *DownloadStore) Append(r *DownloadRecord) error {
	result, err := s.db.Exec(`
		INSERT INTO download_history (path, type, title, year, tmdbid, seasons, episodes, image, download_hash, torrent_name, torrent_description, torrent_site)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Path, r.Type, r.Title, r.Year, r.TMDBID, r.Seasons, r.Episodes,
		r.Image, r.DownloadHash, r.TorrentName, r.TorrentDescription, r.TorrentSite,
	)
	if err != nil {
		return fmt.Errorf("insert download record: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	r.ID = id
	return nil
}

// Truncate removes all download records.
func (s *DownloadStore) Truncate() error {
	if _, err := s.db.Exec(`DELETE FROM download_history`); err != nil {
		return fmt.Errorf("truncate download history: %w", err)
	}
	return nil
}

// GetByHash returns the most recent download record with the given task hash.
// Returns ErrNotFound if no record matches.
func (s *DownloadStore) GetByHash(hash string) (*DownloadRecord, error) {
	r := &DownloadRecord{}
	err := s.db.QueryRow(`
		SELECT id, path, type, title, year, tmdbid, seasons, episodes, image, download_hash, torrent_name, torrent_description, torrent_site
		FROM download_history WHERE download_hash = ? ORDER BY id DESC LIMIT 1`, hash,
	).Scan(&r.ID, &r.Path, &r.Type, &r.Title, &r.Year, &r.TMDBID, &r.Seasons,
		&r.Episodes, &r.Image, &r.DownloadHash, &r.TorrentName,
		&r.TorrentDescription, &r.TorrentSite)
	if err != nil {
		return nil, fmt.Errorf("get download by hash: %w", mapSQLiteError(err))
	}
	return r, nil
}

// List returns a page of download records, most recent first, and the total
// record count.
func (s *DownloadStore) List(page, count int) ([]*DownloadRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 30
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM download_history`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count download history: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, path, type, title, year, tmdbid, seasons, episodes, image, download_hash, torrent_name, torrent_description, torrent_site
		FROM download_history ORDER BY id DESC LIMIT ? OFFSET ?`,
		count, (page-1)*count,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list download history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*DownloadRecord
	for rows.Next() {
		r := &DownloadRecord{}
		if err := rows.Scan(&r.ID, &r.Path, &r.Type, &r.Title, &r.Year, &r.TMDBID,
			&r.Seasons, &r.Episodes, &r.Image, &r.DownloadHash, &r.TorrentName,
			&r.TorrentDescription, &r.TorrentSite); err != nil {
			return nil, 0, fmt.Errorf("scan download record: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate download history: %w", err)
	}
	return results, total, nil
}
