package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in the config file.

Keys use dot notation, e.g. salesforce.instance_url or poll.timeout_seconds.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		for _, k := range settingsService.Keys() {
			cmd.Println(k)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(titleStyle.Render("Current Settings"))
	cmd.Println()

	cmd.Println("[Salesforce]")
	cmd.Printf("  Instance URL: %s\n", orNotSet(settings.Salesforce.InstanceURL))
	cmd.Printf("  API Version: %s\n", settings.Salesforce.APIVersion)
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Output: %s\n", settings.Paths.Output)
	cmd.Printf("  Archive: %s\n", settings.Paths.Archive)
	cmd.Println()

	cmd.Println("[Query]")
	cmd.Printf("  Limit: %d\n", settings.Query.Limit)
	cmd.Println()

	cmd.Println("[Poll]")
	cmd.Printf("  Interval: %s\n", settings.Poll.Interval)
	if settings.Poll.Timeout > 0 {
		cmd.Printf("  Timeout: %s\n", settings.Poll.Timeout)
	} else {
		cmd.Println("  Timeout: none")
	}
	cmd.Printf("  Continue on error: %t\n", settings.Poll.ContinueOnError)
	cmd.Println()

	cmd.Println("[Render]")
	cmd.Printf("  Workers: %d\n", settings.Render.Workers)
	cmd.Printf("  Verbose: %t\n", settings.Render.Verbose)

	if settings.Salesforce.InstanceURL == "" {
		cmd.Println()
		cmd.Println(warningStyle.Render("Warning: salesforce.instance_url is not set."))
		cmd.Println("Run 'apexspec settings set salesforce.instance_url https://<org>.my.salesforce.com'.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Println(successStyle.Render(fmt.Sprintf("%s updated.", args[0])))
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
