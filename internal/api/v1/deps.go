package v1

import (
	"errors"

	"github.com/helmarr/helmarr/internal/events"
	"github.com/helmarr/helmarr/internal/history"
	"github.com/helmarr/helmarr/internal/plugin"
	"github.com/helmarr/helmarr/internal/plugin/historysync"
	"github.com/helmarr/helmarr/internal/site"
)

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Sites      *site.Store
	Transfers  *history.TransferStore
	Downloads  *history.DownloadStore
	PluginData *history.PluginDataStore
	Plugins    *plugin.Registry

	// Optional dependencies (nil if not configured)
	PluginConfig *plugin.ConfigStore
	HistorySync  *historysync.Plugin
	Bus          *events.Bus
	EventLog     *events.EventLog
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Sites == nil {
		return errors.New("site store is required")
	}
	if d.Transfers == nil {
		return errors.New("transfer history store is required")
	}
	if d.Downloads == nil {
		return errors.New("download history store is required")
	}
	if d.PluginData == nil {
		return errors.New("plugin data store is required")
	}
	if d.Plugins == nil {
		return errors.New("plugin registry is required")
	}
	return nil
}
