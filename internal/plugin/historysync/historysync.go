// Package historysync is the plugin that imports history records from a
// legacy NAStool database. A run can be armed through the persisted plugin
// configuration, which fires once at startup, or triggered on demand
// through the API.
package historysync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"

	"github.com/helmarr/helmarr/internal/plugin"
	"github.com/helmarr/helmarr/internal/syncer"
)

// ID is the registry and configuration identifier for this plugin.
const ID = "historysync"

// Status reports whether an import is running and the outcome of the most
// recent run.
type Status struct {
	Running bool
	LastRun *syncer.RunSummary
}

// Plugin wires the import coordinator into the plugin subsystem.
type Plugin struct {
	coord *syncer.Coordinator
	log   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	settings syncer.Settings
	lastRun  *syncer.RunSummary
	wg       sync.WaitGroup
}

// New creates the plugin around a coordinator.
func New(coord *syncer.Coordinator, logger *slog.Logger) *Plugin {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Plugin{
		coord:  coord,
		log:    logger.With("component", "plugin", "plugin_id", ID),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Meta implements plugin.Plugin.
func (p *Plugin) Meta() plugin.Meta {
	return plugin.Meta{
		ID:          ID,
		Name:        "History Sync",
		Description: "Imports transfer, plugin and download history from a NAStool database.",
		Version:     "1.1",
		Order:       21,
	}
}

// Init decodes the persisted configuration. When a record category is
// enabled the armed import fires once in the background; the write-back
// after the run disarms it.
func (p *Plugin) Init(config []byte) error {
	var settings syncer.Settings
	if len(config) > 0 {
		if err := json.Unmarshal(config, &settings); err != nil {
			return err
		}
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	p.settings = settings
	p.mu.Unlock()

	if settings.Enabled() {
		p.log.Info("armed import found, starting run")
		p.start(settings)
	}
	return nil
}

// Enabled reports whether a record category is currently armed.
func (p *Plugin) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings.Enabled()
}

// Trigger starts an import run in the background using the given settings.
// Returns syncer.ErrAlreadyRunning when a run is in progress.
func (p *Plugin) Trigger(settings syncer.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if p.coord.Running() {
		return syncer.ErrAlreadyRunning
	}
	p.mu.Lock()
	p.settings = settings
	p.mu.Unlock()
	p.start(settings)
	return nil
}

func (p *Plugin) start(settings syncer.Settings) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		summary, err := p.coord.Run(p.ctx, settings)
		if err != nil {
			p.log.Error("import run failed", "error", err)
			return
		}
		p.mu.Lock()
		p.lastRun = summary
		p.settings.Clear = false
		p.settings.Transfer = false
		p.settings.Plugin = false
		p.settings.Download = false
		p.mu.Unlock()
	}()
}

// Status reports the current run state and the last completed summary.
func (p *Plugin) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{Running: p.coord.Running(), LastRun: p.lastRun}
}

// Settings returns the current settings snapshot.
func (p *Plugin) Settings() syncer.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// Form implements plugin.Plugin.
func (p *Plugin) Form() (plugin.Form, error) {
	settings := p.Settings()
	return plugin.Form{
		Fields: []plugin.FormField{
			{Name: "clear", Label: "Clear existing history", Kind: "switch",
				Hint: "Empty each destination store before importing it."},
			{Name: "transfer", Label: "Import transfer history", Kind: "switch"},
			{Name: "plugin", Label: "Import plugin data", Kind: "switch"},
			{Name: "download", Label: "Import download history", Kind: "switch"},
			{Name: "source_path", Label: "NAStool database path", Kind: "text",
				Placeholder: "/config/user.db"},
			{Name: "path_map", Label: "Path remap rules", Kind: "textarea",
				Placeholder: "/volume1/media:/data/media",
				Hint:        "One source:destination pair per line."},
			{Name: "downloader_map", Label: "Downloader remap rules", Kind: "textarea",
				Placeholder: "1:qbittorrent"},
			{Name: "site_map", Label: "Site remap rules", Kind: "textarea",
				Placeholder: "oldsite:newsite"},
		},
		Values: map[string]any{
			"clear":          settings.Clear,
			"transfer":       settings.Transfer,
			"plugin":         settings.Plugin,
			"download":       settings.Download,
			"source_path":    settings.SourcePath,
			"path_map":       settings.PathMap,
			"downloader_map": settings.DownloaderMap,
			"site_map":       settings.SiteMap,
		},
	}, nil
}

// Stop cancels any background run and waits for it to finish.
func (p *Plugin) Stop() error {
	p.cancel()
	p.wg.Wait()
	return nil
}

// SettingsSaver adapts the plugin configuration store to the coordinator's
// write-back interface.
type SettingsSaver struct {
	config *plugin.ConfigStore
}

// NewSettingsSaver creates the write-back adapter.
func NewSettingsSaver(config *plugin.ConfigStore) *SettingsSaver {
	return &SettingsSaver{config: config}
}

// SaveSettings implements syncer.SettingsStore.
func (s *SettingsSaver) SaveSettings(settings syncer.Settings) error {
	return s.config.Save(ID, settings)
}
