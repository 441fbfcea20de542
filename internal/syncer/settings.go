package syncer

import (
	"fmt"
	"strings"

	"github.com/helmarr/helmarr/internal/remap"
)

// Settings configures one import run. The zero value disables every
// category. Persisted as the historysync plugin configuration and written
// back with Clear and the completed category flags reset after a run.
type Settings struct {
	Clear         bool   `json:"clear"`
	SourcePath    string `json:"source_path"`
	PathMap       string `json:"path_map"`
	DownloaderMap string `json:"downloader_map"`
	SiteMap       string `json:"site_map"`
	Transfer      bool   `json:"transfer"`
	Plugin        bool   `json:"plugin"`
	Download      bool   `json:"download"`
}

// Enabled reports whether any record category is switched on.
func (s Settings) Enabled() bool {
	return s.Transfer || s.Plugin || s.Download
}

// Validate checks the settings without compiling rule sets.
func (s Settings) Validate() error {
	if s.Enabled() && strings.TrimSpace(s.SourcePath) == "" {
		return fmt.Errorf("source path required when a category is enabled")
	}
	_, err := s.compileRules()
	return err
}

// ruleSet holds the three compiled rule tables for one run.
type ruleSet struct {
	path       remap.Rules
	downloader remap.Rules
	site       remap.Rules
}

// compileRules parses all three rule maps up front so a malformed rule
// rejects the run before any destination store is touched.
func (s Settings) compileRules() (ruleSet, error) {
	var rs ruleSet
	var err error
	if rs.path, err = remap.Parse(s.PathMap); err != nil {
		return rs, fmt.Errorf("path map: %w", err)
	}
	if rs.downloader, err = remap.Parse(s.DownloaderMap); err != nil {
		return rs, fmt.Errorf("downloader map: %w", err)
	}
	if rs.site, err = remap.Parse(s.SiteMap); err != nil {
		return rs, fmt.Errorf("site map: %w", err)
	}
	return rs, nil
}
