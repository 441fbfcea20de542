// Package legacy reads history records from an external NAStool database.
// The source is an uncontrolled sqlite file opened read-only for the duration
// of one import run; its schema is translated into canonical row shapes at
// the query level.
package legacy

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"
)

// ErrSourceUnavailable indicates the legacy database file cannot be opened.
// This is fatal for the entire import run, not per-category.
var ErrSourceUnavailable = errors.New("legacy source unavailable")

// Source is a read-only connection to the legacy database.
type Source struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens the legacy sqlite file read-only and verifies the connection.
func Open(path string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return &Source{db: db, log: logger}, nil
}

// Close releases the source connection.
func (s *Source) Close() error {
	return s.db.Close()
}

// TransferRow is one transfer-history record in canonical shape.
type TransferRow struct {
	Src          string
	Dest         string
	Mode         string
	Type         string
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

// DownloadRow is one download-history record in canonical shape.
type DownloadRow struct {
	SavePath     string
	Type         string
	Title        string
	Year         string
	TMDBID       int64
	Seasons      string
	Episodes     string
	Image        string
	DownloadHash string
	TorrentName  string
	TorrentDesc  string
	Site         string
}

// PluginRow is one plugin key/value record.
type PluginRow struct {
	PluginID string
	Key      string
	Value    string
}

// transferQuery joins the download table for the poster and task hash the
// transfer table lacks, taking one arbitrary download row per tmdbid.
// Localized mode and type labels are folded into canonical enums in SQL so
// callers never see the source vocabulary.
const transferQuery = `
SELECT
	t.SOURCE_PATH || '/' || t.SOURCE_FILENAME AS src,
	t.DEST_PATH || '/' || t.DEST_FILENAME AS dest,
	CASE t.MODE
		WHEN '硬链接' THEN 'link'
		WHEN '移动' THEN 'move'
		WHEN '复制' THEN 'copy'
		ELSE t.MODE
	END AS mode,
	CASE t.TYPE
		WHEN '电影' THEN 'movie'
		WHEN '电视剧' THEN 'series'
		WHEN '动漫' THEN 'series'
		ELSE t.TYPE
	END AS type,
	t.CATEGORY AS category,
	t.TITLE AS title,
	t.YEAR AS year,
	t.TMDBID AS tmdbid,
	CASE t.SEASON_EPISODE
		WHEN NULL THEN NULL
		ELSE substr(t.SEASON_EPISODE, 1, instr(t.SEASON_EPISODE, ' ') - 1)
	END AS seasons,
	CASE t.SEASON_EPISODE
		WHEN NULL THEN NULL
		ELSE substr(t.SEASON_EPISODE, instr(t.SEASON_EPISODE, ' ') + 1)
	END AS episodes,
	d.POSTER AS image,
	d.DOWNLOAD_ID AS download_hash,
	t.DATE AS date
FROM
	TRANSFER_HISTORY t
	LEFT JOIN (SELECT * FROM DOWNLOAD_HISTORY GROUP BY TMDBID) d
		ON t.TITLE = d.TITLE AND t.TYPE = d.TYPE;
`

const downloadQuery = `
SELECT
	SAVE_PATH,
	CASE TYPE
		WHEN '电影' THEN 'movie'
		WHEN '电视剧' THEN 'series'
		WHEN '动漫' THEN 'series'
		ELSE TYPE
	END AS type,
	TITLE,
	YEAR,
	TMDBID,
	CASE SE
		WHEN NULL THEN NULL
		ELSE substr(SE, 1, instr(SE, ' ') - 1)
	END AS seasons,
	CASE SE
		WHEN NULL THEN NULL
		ELSE substr(SE, instr(SE, ' ') + 1)
	END AS episodes,
	POSTER,
	DOWNLOAD_ID,
	TORRENT,
	"DESC",
	SITE
FROM
	DOWNLOAD_HISTORY
WHERE
	SAVE_PATH IS NOT NULL;
`

const pluginQuery = `SELECT PLUGIN_ID, PLUGIN_KEY, PLUGIN_VALUE FROM PLUGIN_HISTORY;`

// TransferHistory reads all transfer-history rows. Zero rows is not an
// error; the category may simply be empty on the source side.
func (s *Source) TransferHistory() ([]TransferRow, error) {
	rows, err := s.db.Query(transferQuery)
	if err != nil {
		return nil, fmt.Errorf("query transfer history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []TransferRow
	for rows.Next() {
		var (
			r                                                      TransferRow
			src, dest, mode, typ, category, title, year            sql.NullString
			tmdbid                                                 sql.NullInt64
			seasons, episodes, image, downloadHash, date           sql.NullString
		)
		if err := rows.Scan(&src, &dest, &mode, &typ, &category, &title, &year,
			&tmdbid, &seasons, &episodes, &image, &downloadHash, &date); err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		r.Src = src.String
		r.Dest = dest.String
		r.Mode = mode.String
		r.Type = typ.String
		r.Category = category.String
		r.Title = title.String
		r.Year = year.String
		r.TMDBID = tmdbid.Int64
		r.Seasons = seasons.String
		r.Episodes = episodes.String
		r.Image = image.String
		r.DownloadHash = downloadHash.String
		r.Date = date.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer history: %w", err)
	}
	if len(out) == 0 {
		s.log.Info("legacy source has no transfer history")
	} else {
		s.log.Info("extracted transfer history", "rows", len(out))
	}
	return out, nil
}

// DownloadHistory reads all download-history rows with a save path.
func (s *Source) DownloadHistory() ([]DownloadRow, error) {
	rows, err := s.db.Query(downloadQuery)
	if err != nil {
		return nil, fmt.Errorf("query download history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []DownloadRow
	for rows.Next() {
		var (
			r                                           DownloadRow
			savePath, typ, title, year                  sql.NullString
			tmdbid                                      sql.NullInt64
			seasons, episodes, image, hash, name, desc  sql.NullString
			site                                        sql.NullString
		)
		if err := rows.Scan(&savePath, &typ, &title, &year, &tmdbid,
			&seasons, &episodes, &image, &hash, &name, &desc, &site); err != nil {
			return nil, fmt.Errorf("scan download row: %w", err)
		}
		r.SavePath = savePath.String
		r.Type = typ.String
		r.Title = title.String
		r.Year = year.String
		r.TMDBID = tmdbid.Int64
		r.Seasons = seasons.String
		r.Episodes = episodes.String
		r.Image = image.String
		r.DownloadHash = hash.String
		r.TorrentName = name.String
		r.TorrentDesc = desc.String
		r.Site = site.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate download history: %w", err)
	}
	if len(out) == 0 {
		s.log.Info("legacy source has no download history")
	} else {
		s.log.Info("extracted download history", "rows", len(out))
	}
	return out, nil
}

// PluginHistory reads all plugin key/value rows.
func (s *Source) PluginHistory() ([]PluginRow, error) {
	rows, err := s.db.Query(pluginQuery)
	if err != nil {
		return nil, fmt.Errorf("query plugin history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []PluginRow
	for rows.Next() {
		var id, key, value sql.NullString
		if err := rows.Scan(&id, &key, &value); err != nil {
			return nil, fmt.Errorf("scan plugin row: %w", err)
		}
		out = append(out, PluginRow{PluginID: id.String, Key: key.String, Value: value.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plugin history: %w", err)
	}
	if len(out) == 0 {
		s.log.Info("legacy source has no plugin history")
	} else {
		s.log.Info("extracted plugin history", "rows", len(out))
	}
	return out, nil
}
