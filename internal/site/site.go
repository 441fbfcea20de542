// Package site manages tracker sites: the registry the import pipeline and
// the REST API resolve site names against.
package site

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates the requested site doesn't exist.
	ErrNotFound = errors.New("site not found")

	// ErrDuplicate indicates a site with the same domain already exists.
	ErrDuplicate = errors.New("duplicate site")
)

// Site is one tracker site.
type Site struct {
	ID        int64
	Name      string
	Domain    string
	URL       string
	Priority  int
	Cookie    string
	UA        string
	Active    bool
	Note      string
	UpdatedAt time.Time
}

// Store provides access to site data.
type Store struct {
	db *sql.DB
}

// NewStore creates a site store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

const siteColumns = `id, name, domain, url, pri, cookie, ua, is_active, note, updated_at`

func scanSite(row interface{ Scan(...any) error }) (*Site, error) {
	s := &Site{}
	var updatedAt sql.NullTime
	err := row.Scan(&s.ID, &s.Name, &s.Domain, &s.URL, &s.Priority, &s.Cookie,
		&s.UA, &s.Active, &s.Note, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

// Add inserts a new site and sets its ID.
func (s *Store) Add(site *Site) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO sites (name, domain, url, pri, cookie, ua, is_active, note, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		site.Name, site.Domain, site.URL, site.Priority, site.Cookie, site.UA,
		site.Active, site.Note, now,
	)
	if err != nil {
		return fmt.Errorf("insert site: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	site.ID = id
	site.UpdatedAt = now
	return nil
}

// Get retrieves a site by ID. Returns ErrNotFound if it does not exist.
func (s *Store) Get(id int64) (*Site, error) {
	site, err := scanSite(s.db.QueryRow(`SELECT `+siteColumns+` FROM sites WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get site %d: %w", id, mapSQLiteError(err))
	}
	return site, nil
}

// GetByDomain retrieves a site by its domain.
func (s *Store) GetByDomain(domain string) (*Site, error) {
	site, err := scanSite(s.db.QueryRow(`SELECT `+siteColumns+` FROM sites WHERE domain = ?`, domain))
	if err != nil {
		return nil, fmt.Errorf("get site by domain %q: %w", domain, mapSQLiteError(err))
	}
	return site, nil
}

// List returns all sites ordered by priority, then name.
func (s *Store) List() ([]*Site, error) {
	rows, err := s.db.Query(`SELECT ` + siteColumns + ` FROM sites ORDER BY pri, name`)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sites []*Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sites: %w", err)
	}
	return sites, nil
}

// Update overwrites a site's mutable fields.
func (s *Store) Update(site *Site) error {
	now := time.Now()
	result, err := s.db.Exec(`
		UPDATE sites SET name = ?, domain = ?, url = ?, pri = ?, cookie = ?, ua = ?, is_active = ?, note = ?, updated_at = ?
		WHERE id = ?`,
		site.Name, site.Domain, site.URL, site.Priority, site.Cookie, site.UA,
		site.Active, site.Note, now, site.ID,
	)
	if err != nil {
		return fmt.Errorf("update site %d: %w", site.ID, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	site.UpdatedAt = now
	return nil
}

// Delete removes a site by ID.
func (s *Store) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM sites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete site %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset removes all sites.
func (s *Store) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM sites`); err != nil {
		return fmt.Errorf("reset sites: %w", err)
	}
	return nil
}

// Names returns all site names in priority order.
func (s *Store) Names() ([]string, error) {
	sites, err := s.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(sites))
	for _, site := range sites {
		names = append(names, site.Name)
	}
	return names, nil
}
