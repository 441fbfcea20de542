package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List installed plugins",
	Args:  cobra.NoArgs,
	RunE:  runPluginsCmd,
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}

func runPluginsCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	plugins, err := client.Plugins()
	if err != nil {
		return fmt.Errorf("failed to fetch plugins: %w", err)
	}

	if jsonOutput {
		printJSON(plugins)
		return nil
	}

	if len(plugins) == 0 {
		fmt.Println("No plugins installed")
		return nil
	}

	fmt.Printf("Plugins (%d):\n\n", len(plugins))
	fmt.Printf("  %-15s %-20s %-8s %-8s %s\n", "ID", "NAME", "VERSION", "ENABLED", "DESCRIPTION")
	for _, p := range plugins {
		enabled := "no"
		if p.Enabled {
			enabled = "yes"
		}
		fmt.Printf("  %-15s %-20s %-8s %-8s %s\n", p.ID, p.Name, p.Version, enabled, p.Description)
	}
	return nil
}
