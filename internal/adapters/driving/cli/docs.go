package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var genDocsCmd = &cobra.Command{
	Use:    "gen-docs <dir>",
	Short:  "Generate Markdown reference pages for every command",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		rootCmd.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
			return fmt.Errorf("generate docs: %w", err)
		}
		cmd.Printf("Wrote command reference to %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
}
