package legacy

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const fixtureSchema = `
CREATE TABLE TRANSFER_HISTORY (
	ID INTEGER PRIMARY KEY,
	SOURCE_PATH TEXT, SOURCE_FILENAME TEXT,
	DEST_PATH TEXT, DEST_FILENAME TEXT,
	MODE TEXT, TYPE TEXT, CATEGORY TEXT,
	TITLE TEXT, YEAR TEXT, TMDBID INTEGER,
	SEASON_EPISODE TEXT, DATE TEXT
);
CREATE TABLE DOWNLOAD_HISTORY (
	ID INTEGER PRIMARY KEY,
	SAVE_PATH TEXT, TYPE TEXT, TITLE TEXT, YEAR TEXT, TMDBID INTEGER,
	SE TEXT, POSTER TEXT, DOWNLOAD_ID TEXT, TORRENT TEXT, "DESC" TEXT, SITE TEXT
);
CREATE TABLE PLUGIN_HISTORY (
	ID INTEGER PRIMARY KEY,
	PLUGIN_ID TEXT, PLUGIN_KEY TEXT, PLUGIN_VALUE TEXT
);
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture creates a legacy database file and returns its path.
func newFixture(t *testing.T, inserts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(fixtureSchema)
	require.NoError(t, err, "apply fixture schema")
	for _, stmt := range inserts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "fixture insert")
	}
	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"), testLogger())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestTransferHistory(t *testing.T) {
	path := newFixture(t,
		`INSERT INTO TRANSFER_HISTORY
			(SOURCE_PATH, SOURCE_FILENAME, DEST_PATH, DEST_FILENAME, MODE, TYPE, CATEGORY, TITLE, YEAR, TMDBID, SEASON_EPISODE, DATE)
		VALUES
			('/downloads', 'movie.mkv', '/media/movies', 'Movie (2020).mkv', '硬链接', '电影', '华语电影', 'Movie', '2020', 100, NULL, '2023-01-02 03:04:05'),
			('/downloads', 'show.mkv', '/media/tv', 'Show S01E01.mkv', '移动', '动漫', '日漫', 'Show', '2021', 200, 'S01 E01', '2023-02-03 04:05:06')`,
		`INSERT INTO DOWNLOAD_HISTORY
			(SAVE_PATH, TYPE, TITLE, YEAR, TMDBID, SE, POSTER, DOWNLOAD_ID, TORRENT, "DESC", SITE)
		VALUES
			('/downloads/movie', '电影', 'Movie', '2020', 100, NULL, 'https://img/poster.jpg', 'abc123', 'Movie.2020.1080p', 'a movie', 'OldSite')`,
	)

	src, err := Open(path, testLogger())
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	rows, err := src.TransferHistory()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	movie := rows[0]
	assert.Equal(t, "/downloads/movie.mkv", movie.Src)
	assert.Equal(t, "/media/movies/Movie (2020).mkv", movie.Dest)
	assert.Equal(t, "link", movie.Mode, "localized mode label translated in SQL")
	assert.Equal(t, "movie", movie.Type)
	assert.Equal(t, int64(100), movie.TMDBID)
	// Poster and hash come from the joined download table.
	assert.Equal(t, "https://img/poster.jpg", movie.Image)
	assert.Equal(t, "abc123", movie.DownloadHash)

	show := rows[1]
	assert.Equal(t, "move", show.Mode)
	assert.Equal(t, "series", show.Type, "anime label folded into series")
	assert.Equal(t, "S01", show.Seasons)
	assert.Equal(t, "E01", show.Episodes)
	assert.Empty(t, show.Image, "no matching download row")
}

func TestDownloadHistory(t *testing.T) {
	path := newFixture(t,
		`INSERT INTO DOWNLOAD_HISTORY
			(SAVE_PATH, TYPE, TITLE, YEAR, TMDBID, SE, POSTER, DOWNLOAD_ID, TORRENT, "DESC", SITE)
		VALUES
			('/downloads/show', '电视剧', 'Show', '2021', 200, 'S02 E05', 'p.jpg', 'def456', 'Show.S02', 'desc', 'OldSite'),
			(NULL, '电影', 'Skipped', '2020', 300, NULL, NULL, NULL, NULL, NULL, NULL)`,
	)

	src, err := Open(path, testLogger())
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	rows, err := src.DownloadHistory()
	require.NoError(t, err)
	require.Len(t, rows, 1, "NULL save paths filtered at the source")

	r := rows[0]
	assert.Equal(t, "/downloads/show", r.SavePath)
	assert.Equal(t, "series", r.Type)
	assert.Equal(t, "S02", r.Seasons)
	assert.Equal(t, "E05", r.Episodes)
	assert.Equal(t, "def456", r.DownloadHash)
	assert.Equal(t, "OldSite", r.Site)
}

func TestPluginHistory(t *testing.T) {
	path := newFixture(t,
		`INSERT INTO PLUGIN_HISTORY (PLUGIN_ID, PLUGIN_KEY, PLUGIN_VALUE) VALUES
			('TorrentTransfer', '1-abc123', '{"to_download": 2}'),
			('CustomPlugin', 'somekey', '"scalar"')`,
	)

	src, err := Open(path, testLogger())
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	rows, err := src.PluginHistory()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, PluginRow{PluginID: "TorrentTransfer", Key: "1-abc123", Value: `{"to_download": 2}`}, rows[0])
}

func TestEmptyCategoriesAreNotErrors(t *testing.T) {
	path := newFixture(t)

	src, err := Open(path, testLogger())
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	transfers, err := src.TransferHistory()
	require.NoError(t, err)
	assert.Empty(t, transfers)

	downloads, err := src.DownloadHistory()
	require.NoError(t, err)
	assert.Empty(t, downloads)

	plugins, err := src.PluginHistory()
	require.NoError(t, err)
	assert.Empty(t, plugins)
}
