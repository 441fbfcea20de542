package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/helmarr/helmarr/internal/events"
	"github.com/helmarr/helmarr/internal/history"
	"github.com/helmarr/helmarr/internal/legacy"
	"github.com/helmarr/helmarr/internal/remap"
	"github.com/helmarr/helmarr/internal/site"
)

// ErrAlreadyRunning is returned when a run is requested while another run
// holds the coordinator. Only one import may touch the stores at a time.
var ErrAlreadyRunning = errors.New("import run already in progress")

// TransferWriter is the destination for transfer records.
type TransferWriter interface {
	Append(r *history.TransferRecord) error
	Truncate() error
}

// DownloadWriter is the destination for download records.
type DownloadWriter interface {
	Append(r *history.DownloadRecord) error
	Truncate() error
}

// PluginDataWriter is the destination for plugin key/value records.
type PluginDataWriter interface {
	Upsert(pluginID, key, value string) error
	Truncate() error
}

// Extractor reads the three record categories from a legacy source.
type Extractor interface {
	TransferHistory() ([]legacy.TransferRow, error)
	DownloadHistory() ([]legacy.DownloadRow, error)
	PluginHistory() ([]legacy.PluginRow, error)
	Close() error
}

// SettingsStore persists the run settings for the write-back after a run.
type SettingsStore interface {
	SaveSettings(s Settings) error
}

// SiteNames lists the known site names for unknown-site diagnostics.
type SiteNames interface {
	Names() ([]string, error)
}

// SourceOpener opens a legacy source. Replaceable in tests.
type SourceOpener func(path string, logger *slog.Logger) (Extractor, error)

// Coordinator drives one import run at a time against the local stores.
type Coordinator struct {
	transfers  TransferWriter
	downloads  DownloadWriter
	pluginData PluginDataWriter
	settings   SettingsStore
	openSource SourceOpener
	bus        *events.Bus
	siteNames  SiteNames
	log        *slog.Logger
	running    atomic.Bool
}

// NewCoordinator creates a coordinator over the given store adapters.
func NewCoordinator(transfers TransferWriter, downloads DownloadWriter, pluginData PluginDataWriter, settings SettingsStore, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		transfers:  transfers,
		downloads:  downloads,
		pluginData: pluginData,
		settings:   settings,
		openSource: func(path string, l *slog.Logger) (Extractor, error) {
			return legacy.Open(path, l)
		},
		log: logger.With("component", "syncer"),
	}
}

// SetBus attaches an event bus. Without one no events are published.
func (c *Coordinator) SetBus(bus *events.Bus) { c.bus = bus }

// SetSiteNames attaches a site-name source for unknown-site diagnostics.
func (c *Coordinator) SetSiteNames(names SiteNames) { c.siteNames = names }

// SetSourceOpener replaces how the legacy source is opened.
func (c *Coordinator) SetSourceOpener(open SourceOpener) { c.openSource = open }

// Running reports whether a run currently holds the coordinator.
func (c *Coordinator) Running() bool { return c.running.Load() }

// Run executes one import with the given settings. It returns
// ErrAlreadyRunning if another run is in progress and ErrSourceUnavailable
// if the legacy database cannot be opened; per-record failures never fail
// the run, they are absorbed into the summary counts.
func (c *Coordinator) Run(ctx context.Context, settings Settings) (*RunSummary, error) {
	if !c.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer c.running.Store(false)

	rules, err := settings.compileRules()
	if err != nil {
		return nil, err
	}

	summary := newRunSummary()
	log := c.log.With("run_id", summary.RunID.String())

	if !settings.Enabled() {
		log.Info("no record categories enabled, nothing to import")
		summary.FinishedAt = time.Now()
		return summary, nil
	}

	source, err := c.openSource(settings.SourcePath, log)
	if err != nil {
		log.Error("cannot open legacy source", "path", settings.SourcePath, "error", err)
		c.publish(ctx, &events.SyncRunAborted{
			BaseEvent: events.NewBaseEvent(events.EventSyncRunAborted, events.EntitySyncRun, 0),
			RunID:     summary.RunID.String(),
			Reason:    err.Error(),
		})
		return nil, err
	}
	defer func() { _ = source.Close() }()

	log.Info("import run started",
		"clear", settings.Clear,
		"transfer", settings.Transfer,
		"plugin", settings.Plugin,
		"download", settings.Download)
	c.publish(ctx, &events.SyncRunStarted{
		BaseEvent:  events.NewBaseEvent(events.EventSyncRunStarted, events.EntitySyncRun, 0),
		RunID:      summary.RunID.String(),
		Clear:      settings.Clear,
		Categories: enabledCategories(settings),
	})

	if settings.Transfer {
		c.runCategory(ctx, summary, CategoryTransfer, log, func(result *CategoryResult) {
			c.importTransfers(ctx, source, rules.path, settings.Clear, result, log)
		})
	}
	if settings.Plugin {
		c.runCategory(ctx, summary, CategoryPlugin, log, func(result *CategoryResult) {
			c.importPluginData(ctx, source, rules.downloader, settings.Clear, result, log)
		})
	}
	if settings.Download {
		c.runCategory(ctx, summary, CategoryDownload, log, func(result *CategoryResult) {
			c.importDownloads(ctx, source, rules.site, settings.Clear, result, log)
		})
	}

	c.saveSettings(settings, log)

	summary.FinishedAt = time.Now()
	written, skipped, failed := summary.Totals()
	log.Info("import run finished",
		"written", written,
		"skipped", skipped,
		"failed", failed,
		"elapsed", summary.FinishedAt.Sub(summary.StartedAt))
	c.publish(ctx, &events.SyncRunCompleted{
		BaseEvent: events.NewBaseEvent(events.EventSyncRunCompleted, events.EntitySyncRun, 0),
		RunID:     summary.RunID.String(),
		Written:   written,
		Skipped:   skipped,
		Failed:    failed,
	})
	return summary, nil
}

// runCategory wraps one category import with timing and the completion
// event.
func (c *Coordinator) runCategory(ctx context.Context, summary *RunSummary, category Category, log *slog.Logger, run func(*CategoryResult)) {
	result := &CategoryResult{Category: category}
	start := time.Now()
	run(result)
	result.Elapsed = time.Since(start)
	summary.Categories = append(summary.Categories, result)

	if result.Err != nil {
		log.Error("category import aborted",
			"category", category,
			"written", result.Written,
			"error", result.Err)
	} else {
		log.Info("category import completed",
			"category", category,
			"written", result.Written,
			"skipped", result.Skipped,
			"failed", result.Failed,
			"elapsed", result.Elapsed)
	}
	c.publish(ctx, &events.SyncCategoryCompleted{
		BaseEvent: events.NewBaseEvent(events.EventSyncCategoryCompleted, events.EntitySyncRun, 0),
		RunID:     summary.RunID.String(),
		Category:  string(category),
		Written:   result.Written,
		Skipped:   result.Skipped,
		Failed:    result.Failed,
		ElapsedMS: result.Elapsed.Milliseconds(),
	})
}

func (c *Coordinator) importTransfers(ctx context.Context, source Extractor, rules remap.Rules, clear bool, result *CategoryResult, log *slog.Logger) {
	if clear {
		if err := c.transfers.Truncate(); err != nil {
			result.Err = fmt.Errorf("clear transfer history: %w", err)
			return
		}
	}
	rows, err := source.TransferHistory()
	if err != nil {
		result.Err = err
		return
	}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return
		}
		record := normalizeTransfer(row, rules)
		if record == nil {
			result.Skipped++
			continue
		}
		switch err := c.transfers.Append(record); {
		case err == nil:
			result.Written++
		case errors.Is(err, history.ErrDuplicate):
			result.Skipped++
		case history.IsSystemic(err):
			result.Err = err
			return
		default:
			result.Failed++
			log.Warn("transfer record rejected", "src", record.Src, "error", err)
		}
	}
}

func (c *Coordinator) importPluginData(ctx context.Context, source Extractor, rules remap.Rules, clear bool, result *CategoryResult, log *slog.Logger) {
	if clear {
		if err := c.pluginData.Truncate(); err != nil {
			result.Err = fmt.Errorf("clear plugin data: %w", err)
			return
		}
	}
	rows, err := source.PluginHistory()
	if err != nil {
		result.Err = err
		return
	}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return
		}
		datum, err := normalizePlugin(row, rules)
		if err != nil {
			result.Failed++
			log.Warn("plugin record rejected", "plugin_id", row.PluginID, "key", row.Key, "error", err)
			continue
		}
		switch err := c.pluginData.Upsert(datum.PluginID, datum.Key, datum.Value); {
		case err == nil:
			result.Written++
		case history.IsSystemic(err):
			result.Err = err
			return
		default:
			result.Failed++
			log.Warn("plugin record rejected", "plugin_id", datum.PluginID, "key", datum.Key, "error", err)
		}
	}
}

func (c *Coordinator) importDownloads(ctx context.Context, source Extractor, rules remap.Rules, clear bool, result *CategoryResult, log *slog.Logger) {
	if clear {
		if err := c.downloads.Truncate(); err != nil {
			result.Err = fmt.Errorf("clear download history: %w", err)
			return
		}
	}
	rows, err := source.DownloadHistory()
	if err != nil {
		result.Err = err
		return
	}
	known := c.knownSites(log)
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return
		}
		record := normalizeDownload(row, rules)
		if known != nil && record.TorrentSite != "" && !known[site.NormalizeName(record.TorrentSite)] {
			c.logUnknownSite(record.TorrentSite, known, log)
		}
		switch err := c.downloads.Append(record); {
		case err == nil:
			result.Written++
		case errors.Is(err, history.ErrDuplicate):
			result.Skipped++
		case history.IsSystemic(err):
			result.Err = err
			return
		default:
			result.Failed++
			log.Warn("download record rejected", "title", record.Title, "error", err)
		}
	}
}

// knownSites returns the normalized set of managed site names, or nil when
// no site source is attached or listing fails.
func (c *Coordinator) knownSites(log *slog.Logger) map[string]bool {
	if c.siteNames == nil {
		return nil
	}
	names, err := c.siteNames.Names()
	if err != nil {
		log.Warn("cannot list site names", "error", err)
		return nil
	}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[site.NormalizeName(n)] = true
	}
	return known
}

func (c *Coordinator) logUnknownSite(name string, known map[string]bool, log *slog.Logger) {
	candidates := make([]string, 0, len(known))
	for n := range known {
		candidates = append(candidates, n)
	}
	if suggestion, ok := site.Closest(name, candidates); ok {
		log.Warn("download references unmanaged site", "site", name, "closest_match", suggestion)
		return
	}
	log.Warn("download references unmanaged site", "site", name)
}

// saveSettings writes the settings back with the one-shot flags reset so a
// restart does not silently repeat the import. A write-back failure does
// not fail the run.
func (c *Coordinator) saveSettings(settings Settings, log *slog.Logger) {
	if c.settings == nil {
		return
	}
	settings.Clear = false
	settings.Transfer = false
	settings.Plugin = false
	settings.Download = false
	if err := c.settings.SaveSettings(settings); err != nil {
		log.Error("cannot write back run settings", "error", err)
	}
}

func (c *Coordinator) publish(ctx context.Context, e events.Event) {
	if c.bus == nil {
		return
	}
	_ = c.bus.Publish(ctx, e)
}

func enabledCategories(s Settings) []string {
	var out []string
	if s.Transfer {
		out = append(out, string(CategoryTransfer))
	}
	if s.Plugin {
		out = append(out, string(CategoryPlugin))
	}
	if s.Download {
		out = append(out, string(CategoryDownload))
	}
	return out
}
