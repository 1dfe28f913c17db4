package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

var renderWatch bool

var renderCmd = &cobra.Command{
	Use:   "render <classes|triggers> [member...]",
	Short: "Regenerate specs from the archive",
	Long: `Writes documents from the archived records and symbol tables without
calling the API. With no member names every archived symbol table is
rendered.

With --watch the command keeps running and re-renders each member whose
symbol table changes.`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: kindArgs,
	RunE:      runRender,
}

func init() {
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "re-render when symbol tables change")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseApexKind(args[0])
	if err != nil {
		return err
	}
	if renderService == nil {
		return errors.New("render service not configured")
	}

	paths, err := renderService.Render(cmd.Context(), kind, args[1:])
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	for _, p := range paths {
		cmd.Println(mutedStyle.Render(p))
	}
	cmd.Println(successStyle.Render(fmt.Sprintf("Rendered %d documents.", len(paths))))

	if !renderWatch {
		return nil
	}
	return watchSymbolTables(cmd, kind)
}
