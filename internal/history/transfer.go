package history

import (
	"fmt"
)

// TransferRecord is one completed file-transfer event.
type TransferRecord struct {
	ID           int64
	Src          string
	Dest         string
	Mode         string // link, move, copy
	Type         string // movie, series
	Category     string
	Title        string
	Year         string
	TMDBID       int64
	Seasons      string
	Episodes     string
	Image        string
	DownloadHash string
	Date         string
}

// TransferStore persists transfer-history records. Writes are create-only;
// the import pipeline never updates or deletes individual records.
type TransferStore struct {
	db querier
}

// NewTransferStore creates a transfer-history store.
func NewTransferStore(db querier) *TransferStore {
	return &TransferStore{db: db}
}

// Append inserts a new transfer record and sets its ID.
func (s *TransferStore) Append(r *TransferRecord) error {
	result, err := s.db.Exec(`
		INSERT INTO transfer_history (src, dest, mode, type, category, title, year, tmdbid, seasons, episodes, image, download_hash, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Src, r.Dest, r.Mode, r.Type, r.Category, r.Title, r.Year, r.TMDBID,
		r.Seasons, r.Episodes, r.Image, r.DownloadHash, r.Date,
	)
	if err != nil {
		return fmt.Errorf("insert transfer record: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	r.ID = id
	return nil
}

// Truncate removes all transfer records.
func (s *TransferStore) Truncate() error {
	if _, err := s.db.Exec(`DELETE FROM transfer_history`); err != nil {
		return fmt.Errorf("truncate transfer history: %w", err)
	}
	return nil
}

// List returns a page of transfer records, most recent first, and the total
// record count.
func (s *TransferStore) List(page, count int) ([]*TransferRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 30
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM transfer_history`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transfer history: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, src, dest, mode, type, category, title, year, tmdbid, seasons, episodes, image, download_hash, date
		FROM transfer_history ORDER BY id DESC LIMIT ? OFFSET ?`,
		count, (page-1)*count,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list transfer history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*TransferRecord
	for rows.Next() {
		r := &TransferRecord{}
		if err := rows.Scan(&r.ID, &r.Src, &r.Dest, &r.Mode, &r.Type, &r.Category,
			&r.Title, &r.Year, &r.TMDBID, &r.Seasons, &r.Episodes, &r.Image,
			&r.DownloadHash, &r.Date); err != nil {
			return nil, 0, fmt.Errorf("scan transfer record: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transfer history: %w", err)
	}
	return results, total, nil
}
