package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

var kindArgs = []string{"classes", "triggers"}

var buildCmd = &cobra.Command{
	Use:   "build <classes|triggers>",
	Short: "Compile members and generate their specs",
	Long: `Retrieves every unmanaged ApexClass or ApexTrigger, compiles them
check-only in MetadataContainers of 24 members, archives the symbol
tables and writes one Markdown document per member.

Batches run one after another; the first failing batch stops the build.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindArgs,
	RunE:      runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseApexKind(args[0])
	if err != nil {
		return err
	}
	if specService == nil {
		return apiUnavailable()
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("Building %s specs", kind)))

	report, err := specService.Build(cmd.Context(), kind)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Println(successStyle.Render(fmt.Sprintf("Wrote %d documents.", len(report.Documents))))
	return nil
}

func printReport(cmd *cobra.Command, report *domain.BuildReport) {
	cmd.Printf("Retrieved %d records, skipped %d managed.\n", report.Retrieved, report.Skipped)
	for _, b := range report.Batches {
		line := fmt.Sprintf("  batch %d: %d members, %d documents, %s", b.Batch, b.Members, b.Documents, b.Stage)
		if b.Succeeded() {
			cmd.Println(line)
			continue
		}
		cmd.Println(warningStyle.Render(line + ": " + b.ErrorMsg))
	}
}
