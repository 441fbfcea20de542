package syncer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/helmarr/helmarr/internal/history"
	"github.com/helmarr/helmarr/internal/legacy"
	"github.com/helmarr/helmarr/internal/remap"
)

// Plugin identifiers whose keys or values embed a downloader index and need
// rewriting through the downloader rule table.
const (
	pluginTorrentTransfer = "TorrentTransfer"
	pluginAutoSeed        = "IYUUAutoSeed"
)

// ValueDecodeError marks a single plugin record whose value cannot be
// decoded for rewriting. The record is skipped; the run continues.
type ValueDecodeError struct {
	Key string
	Err error
}

func (e *ValueDecodeError) Error() string {
	return fmt.Sprintf("decode plugin value for key %q: %v", e.Key, e.Err)
}

func (e *ValueDecodeError) Unwrap() error { return e.Err }

// normalizeTransfer converts a raw transfer row into a TransferRecord,
// applying the path rules to both sides. Returns nil when the row must be
// skipped: source and destination are both required.
func normalizeTransfer(row legacy.TransferRow, rules remap.Rules) *history.TransferRecord {
	if strings.TrimSpace(row.Src) == "" || strings.TrimSpace(row.Dest) == "" {
		return nil
	}
	return &history.TransferRecord{
		Src:          rules.Path(row.Src),
		Dest:         rules.Path(row.Dest),
		Mode:         row.Mode,
		Type:         row.Type,
		Category:     row.Category,
		Title:        row.Title,
		Year:         row.Year,
		TMDBID:       row.TMDBID,
		Seasons:      row.Seasons,
		Episodes:     row.Episodes,
		Image:        row.Image,
		DownloadHash: row.DownloadHash,
		Date:         row.Date,
	}
}

// normalizeDownload converts a raw download row into a DownloadRecord. The
// save path keeps only its final component; the site name goes through the
// site rule table.
func normalizeDownload(row legacy.DownloadRow, rules remap.Rules) *history.DownloadRecord {
	return &history.DownloadRecord{
		Path:               filepath.Base(row.SavePath),
		Type:               row.Type,
		Title:              row.Title,
		Year:               row.Year,
		TMDBID:             row.TMDBID,
		Seasons:            row.Seasons,
		Episodes:           row.Episodes,
		Image:              row.Image,
		DownloadHash:       row.DownloadHash,
		TorrentName:        row.TorrentName,
		TorrentDescription: row.TorrentDesc,
		TorrentSite:        rules.SiteName(row.Site),
	}
}

// normalizePlugin converts a raw plugin row into a PluginDatum. Records for
// the two cross-seed plugins carry a downloader index in the key or value
// and are rewritten through the downloader rules; everything else passes
// through verbatim. With an empty rule set no value is ever decoded.
func normalizePlugin(row legacy.PluginRow, rules remap.Rules) (*history.PluginDatum, error) {
	datum := &history.PluginDatum{PluginID: row.PluginID, Key: row.Key, Value: row.Value}
	if len(rules) == 0 {
		return datum, nil
	}

	switch row.PluginID {
	case pluginTorrentTransfer:
		datum.Key = rewriteCompositeKey(row.Key, rules)
		value, changed, err := rewriteObjectField(row.Value, "to_download", rules)
		if err != nil {
			return nil, &ValueDecodeError{Key: row.Key, Err: err}
		}
		if changed {
			datum.Value = value
		}
	case pluginAutoSeed:
		value, changed, err := rewriteArrayField(row.Value, "downloader", rules)
		if err != nil {
			return nil, &ValueDecodeError{Key: row.Key, Err: err}
		}
		if changed {
			datum.Value = value
		}
	}
	return datum, nil
}

// rewriteCompositeKey rewrites the downloader index in a "<index>-<hash>"
// key. Keys without a delimiter or with a non-matching index are returned
// unchanged.
func rewriteCompositeKey(key string, rules remap.Rules) string {
	index, rest, ok := strings.Cut(key, "-")
	if !ok {
		return key
	}
	mapped := rules.DownloaderIndex(index)
	if mapped == index {
		return key
	}
	return mapped + "-" + rest
}

// rewriteObjectField decodes a JSON object and rewrites one field through
// the downloader rules. Reports whether a rewrite happened; the original
// text is kept when nothing matched.
func rewriteObjectField(raw, field string, rules remap.Rules) (string, bool, error) {
	obj := map[string]any{}
	if err := decodeJSON(raw, &obj); err != nil {
		return "", false, err
	}
	if !rewriteDownloaderValue(obj, field, rules) {
		return raw, false, nil
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return "", false, err
	}
	return string(out), true, nil
}

// rewriteArrayField decodes a JSON array of objects and rewrites one field
// of each element. A value of any other JSON shape is a decode error.
func rewriteArrayField(raw, field string, rules remap.Rules) (string, bool, error) {
	var list []any
	if err := decodeJSON(raw, &list); err != nil {
		return "", false, err
	}
	changed := false
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if rewriteDownloaderValue(obj, field, rules) {
			changed = true
		}
	}
	if !changed {
		return raw, false, nil
	}
	out, err := json.Marshal(list)
	if err != nil {
		return "", false, err
	}
	return string(out), true, nil
}

// rewriteDownloaderValue rewrites obj[field] through the rules if it holds
// a numeric index, keeping the rule's destination as a literal string.
func rewriteDownloaderValue(obj map[string]any, field string, rules remap.Rules) bool {
	current, ok := obj[field]
	if !ok {
		return false
	}
	var asString string
	switch v := current.(type) {
	case string:
		asString = v
	case json.Number:
		asString = v.String()
	default:
		return false
	}
	mapped := rules.DownloaderIndex(asString)
	if mapped == asString {
		return false
	}
	obj[field] = mapped
	return true
}

// decodeJSON decodes with UseNumber so integer downloader indexes survive
// the round trip without float formatting.
func decodeJSON(raw string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	return dec.Decode(v)
}
