package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Legacy history import",
}

var syncRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an import run",
	Long: `Start an import run from a NAStool database.

Without flags, reuses the settings stored on the server. Flags
override the stored settings for this run.

Examples:
  helmarr sync run                                    # Use stored settings
  helmarr sync run --source /config/user.db --transfer
  helmarr sync run --source /config/user.db --download --site-map old:new`,
	Args: cobra.NoArgs,
	RunE: runSyncRun,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the current or last import run",
	Args:  cobra.NoArgs,
	RunE:  runSyncStatus,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncRunCmd)
	syncCmd.AddCommand(syncStatusCmd)

	syncRunCmd.Flags().String("source", "", "NAStool database path")
	syncRunCmd.Flags().Bool("clear", false, "Empty each destination store before importing")
	syncRunCmd.Flags().Bool("transfer", false, "Import transfer history")
	syncRunCmd.Flags().Bool("plugin", false, "Import plugin data")
	syncRunCmd.Flags().Bool("download", false, "Import download history")
	syncRunCmd.Flags().String("path-map", "", "Path remap rules, one src:dest pair per line")
	syncRunCmd.Flags().String("downloader-map", "", "Downloader remap rules")
	syncRunCmd.Flags().String("site-map", "", "Site remap rules")
}

func runSyncRun(cmd *cobra.Command, args []string) error {
	var req *SyncRunRequest
	if cmd.Flags().NFlag() > 0 {
		source, _ := cmd.Flags().GetString("source")
		clear, _ := cmd.Flags().GetBool("clear")
		transfer, _ := cmd.Flags().GetBool("transfer")
		plugin, _ := cmd.Flags().GetBool("plugin")
		download, _ := cmd.Flags().GetBool("download")
		pathMap, _ := cmd.Flags().GetString("path-map")
		downloaderMap, _ := cmd.Flags().GetString("downloader-map")
		siteMap, _ := cmd.Flags().GetString("site-map")

		req = &SyncRunRequest{
			Clear:         clear,
			Transfer:      transfer,
			Plugin:        plugin,
			Download:      download,
			SourcePath:    source,
			PathMap:       pathMap,
			DownloaderMap: downloaderMap,
			SiteMap:       siteMap,
		}
	}

	client := NewClient(serverURL)
	resp, err := client.SyncRun(req)
	if err != nil {
		return fmt.Errorf("failed to start import: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("Import %s. Watch it with 'helmarr sync status'.\n", resp.Status)
	return nil
}

func runSyncStatus(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.SyncStatus()
	if err != nil {
		return fmt.Errorf("failed to fetch import status: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printSyncStatus(status)
	return nil
}

func printSyncStatus(s *SyncStatusResponse) {
	if s.Running {
		fmt.Println("Import running")
	} else if s.RunID == "" {
		fmt.Println("No import has run yet")
		return
	} else {
		fmt.Println("Last import")
	}

	if s.RunID != "" {
		fmt.Printf("  Run:      %s\n", s.RunID)
	}
	if s.StartedAt != nil {
		fmt.Printf("  Started:  %s\n", *s.StartedAt)
	}
	if s.FinishedAt != nil {
		fmt.Printf("  Finished: %s\n", *s.FinishedAt)
	}

	if len(s.Categories) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-10s %8s %8s %8s %10s\n", "CATEGORY", "WRITTEN", "SKIPPED", "FAILED", "ELAPSED")
	for _, c := range s.Categories {
		fmt.Printf("  %-10s %8d %8d %8d %8dms\n", c.Category, c.Written, c.Skipped, c.Failed, c.ElapsedMS)
		if c.Error != "" {
			fmt.Printf("    error: %s\n", c.Error)
		}
	}
}
