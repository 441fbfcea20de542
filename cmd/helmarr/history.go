package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse imported history",
}

var historyTransfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "List transfer history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryTransfers,
}

var historyDownloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "List download history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryDownloads,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyTransfersCmd)
	historyCmd.AddCommand(historyDownloadsCmd)

	for _, c := range []*cobra.Command{historyTransfersCmd, historyDownloadsCmd} {
		c.Flags().Int("page", 1, "Page number")
		c.Flags().IntP("count", "n", 30, "Records per page")
	}
}

func runHistoryTransfers(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	count, _ := cmd.Flags().GetInt("count")

	client := NewClient(serverURL)
	transfers, err := client.Transfers(page, count)
	if err != nil {
		return fmt.Errorf("failed to fetch transfer history: %w", err)
	}

	if jsonOutput {
		printJSON(transfers)
		return nil
	}

	if len(transfers.Items) == 0 {
		fmt.Println("No transfer history")
		return nil
	}

	fmt.Printf("Transfer history (page %d, %d total):\n\n", transfers.Page, transfers.Total)
	fmt.Printf("  %4s  %-30s %-6s %-8s %s\n", "ID", "TITLE", "TYPE", "MODE", "DEST")
	for _, t := range transfers.Items {
		fmt.Printf("  %4d  %-30s %-6s %-8s %s\n",
			t.ID, truncate(t.Title, 30), t.Type, t.Mode, truncate(t.Dest, 50))
	}
	return nil
}

func runHistoryDownloads(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	count, _ := cmd.Flags().GetInt("count")

	client := NewClient(serverURL)
	downloads, err := client.Downloads(page, count)
	if err != nil {
		return fmt.Errorf("failed to fetch download history: %w", err)
	}

	if jsonOutput {
		printJSON(downloads)
		return nil
	}

	if len(downloads.Items) == 0 {
		fmt.Println("No download history")
		return nil
	}

	fmt.Printf("Download history (page %d, %d total):\n\n", downloads.Page, downloads.Total)
	fmt.Printf("  %4s  %-30s %-6s %-15s %s\n", "ID", "TITLE", "TYPE", "SITE", "TORRENT")
	for _, d := range downloads.Items {
		fmt.Printf("  %4d  %-30s %-6s %-15s %s\n",
			d.ID, truncate(d.Title, 30), d.Type, d.TorrentSite, truncate(d.TorrentName, 40))
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
