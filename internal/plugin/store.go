package plugin

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrNoConfig is returned when a plugin has no persisted configuration yet.
var ErrNoConfig = errors.New("no plugin configuration")

const configKeyPrefix = "plugin."

// ConfigStore persists plugin configuration documents in the system_config
// table under "plugin.<id>" keys.
type ConfigStore struct {
	db *sql.DB
}

// NewConfigStore creates a plugin configuration store.
func NewConfigStore(db *sql.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

// Load reads the raw configuration document for a plugin.
// Returns ErrNoConfig when none has been saved.
func (s *ConfigStore) Load(pluginID string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT config_value FROM system_config WHERE config_key = ?`,
		configKeyPrefix+pluginID,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoConfig, pluginID)
	}
	if err != nil {
		return nil, fmt.Errorf("load plugin config: %w", err)
	}
	return []byte(value), nil
}

// Save marshals v and stores it as the plugin's configuration document.
func (s *ConfigStore) Save(pluginID string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal plugin config: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO system_config (config_key, config_value)
		VALUES (?, ?)
		ON CONFLICT (config_key) DO UPDATE SET config_value = excluded.config_value`,
		configKeyPrefix+pluginID, string(doc),
	)
	if err != nil {
		return fmt.Errorf("save plugin config: %w", err)
	}
	return nil
}
