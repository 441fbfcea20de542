package history

import (
	"fmt"
)

// PluginDatum is one plugin-scoped key/value entry. Value is an opaque JSON
// document owned by the plugin identified by PluginID.
type PluginDatum struct {
	PluginID string
	Key      string
	Value    string
}

// PluginDataStore persists plugin key/value data. (plugin_id, key) is an
// upsert key: the same external key may recur across repeated import runs.
type PluginDataStore struct {
	db querier
}

// NewPluginDataStore creates a plugin-data store.
func NewPluginDataStore(db querier) *PluginDataStore {
	return &PluginDataStore{db: db}
}

// Upsert inserts or overwrites the value stored under (pluginID, key).
func (s *PluginDataStore) Upsert(pluginID, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO plugin_data (plugin_id, data_key, data_value)
		VALUES (?, ?, ?)
		ON CONFLICT (plugin_id, data_key) DO UPDATE SET data_value = excluded.data_value`,
		pluginID, key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert plugin data: %w", mapSQLiteError(err))
	}
	return nil
}

// Get returns the value stored under (pluginID, key).
// Returns ErrNotFound if no entry exists.
func (s *PluginDataStore) Get(pluginID, key string) (string, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT data_value FROM plugin_data WHERE plugin_id = ? AND data_key = ?`,
		pluginID, key,
	).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get plugin data: %w", mapSQLiteError(err))
	}
	return value, nil
}

// ListByPlugin returns all entries owned by a plugin.
func (s *PluginDataStore) ListByPlugin(pluginID string) ([]*PluginDatum, error) {
	rows, err := s.db.Query(`
		SELECT plugin_id, data_key, data_value FROM plugin_data
		WHERE plugin_id = ? ORDER BY data_key`, pluginID,
	)
	if err != nil {
		return nil, fmt.Errorf("list plugin data: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*PluginDatum
	for rows.Next() {
		d := &PluginDatum{}
		if err := rows.Scan(&d.PluginID, &d.Key, &d.Value); err != nil {
			return nil, fmt.Errorf("scan plugin datum: %w", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plugin data: %w", err)
	}
	return results, nil
}

// Truncate removes all plugin data.
func (s *PluginDataStore) Truncate() error {
	if _, err := s.db.Exec(`DELETE FROM plugin_data`); err != nil {
		return fmt.Errorf("truncate plugin data: %w", err)
	}
	return nil
}
