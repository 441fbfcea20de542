package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Manage tracked sites",
}

var sitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked sites",
	Args:  cobra.NoArgs,
	RunE:  runSitesList,
}

var sitesAddCmd = &cobra.Command{
	Use:   "add <name> <domain>",
	Short: "Add a site",
	Args:  cobra.ExactArgs(2),
	RunE:  runSitesAdd,
}

var sitesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a site",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitesRemove,
}

var sitesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all tracked sites",
	Args:  cobra.NoArgs,
	RunE:  runSitesReset,
}

func init() {
	rootCmd.AddCommand(sitesCmd)
	sitesCmd.AddCommand(sitesListCmd)
	sitesCmd.AddCommand(sitesAddCmd)
	sitesCmd.AddCommand(sitesRemoveCmd)
	sitesCmd.AddCommand(sitesResetCmd)

	sitesAddCmd.Flags().String("url", "", "Site URL")
	sitesAddCmd.Flags().Int("priority", 1, "Site priority")
	sitesAddCmd.Flags().Bool("inactive", false, "Add the site in a disabled state")
	sitesAddCmd.Flags().String("note", "", "Free-form note")
	sitesResetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runSitesList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	sites, err := client.Sites()
	if err != nil {
		return fmt.Errorf("failed to fetch sites: %w", err)
	}

	if jsonOutput {
		printJSON(sites)
		return nil
	}

	if len(sites.Items) == 0 {
		fmt.Println("No sites")
		return nil
	}

	fmt.Printf("Sites (%d):\n\n", sites.Total)
	fmt.Printf("  %4s  %-20s %-30s %-8s %s\n", "ID", "NAME", "DOMAIN", "PRIORITY", "ACTIVE")
	for _, s := range sites.Items {
		active := "yes"
		if !s.Active {
			active = "no"
		}
		fmt.Printf("  %4d  %-20s %-30s %-8d %s\n", s.ID, s.Name, s.Domain, s.Priority, active)
	}
	return nil
}

func runSitesAdd(cmd *cobra.Command, args []string) error {
	siteURL, _ := cmd.Flags().GetString("url")
	priority, _ := cmd.Flags().GetInt("priority")
	inactive, _ := cmd.Flags().GetBool("inactive")
	note, _ := cmd.Flags().GetString("note")

	active := !inactive
	req := &AddSiteRequest{
		Name:     args[0],
		Domain:   args[1],
		URL:      siteURL,
		Priority: &priority,
		Active:   &active,
		Note:     note,
	}

	client := NewClient(serverURL)
	site, err := client.AddSite(req)
	if err != nil {
		return fmt.Errorf("failed to add site: %w", err)
	}

	if jsonOutput {
		printJSON(site)
		return nil
	}

	fmt.Printf("Added site %q (id %d)\n", site.Name, site.ID)
	return nil
}

func runSitesRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid site ID: %s", args[0])
	}

	client := NewClient(serverURL)
	if err := client.DeleteSite(id); err != nil {
		return fmt.Errorf("failed to remove site: %w", err)
	}

	fmt.Printf("Removed site %d\n", id)
	return nil
}

func runSitesReset(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		return fmt.Errorf("this deletes all tracked sites; rerun with --yes to confirm")
	}

	client := NewClient(serverURL)
	if err := client.ResetSites(); err != nil {
		return fmt.Errorf("failed to reset sites: %w", err)
	}

	fmt.Println("All sites removed")
	return nil
}
