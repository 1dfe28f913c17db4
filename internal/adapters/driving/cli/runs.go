package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

var (
	runsKind  string
	runsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent build batches",
	Long: `Lists the batches recorded by previous builds, newest first, with the
stage each one reached and any error.`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVarP(&runsKind, "kind", "k", "", "only show classes or triggers")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 0, "maximum number of runs (default 20)")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	var kind domain.ApexKind
	if runsKind != "" {
		parsed, err := domain.ParseApexKind(runsKind)
		if err != nil {
			return err
		}
		kind = parsed
	}

	runs, err := runService.Recent(cmd.Context(), kind, runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	t := newTable("Started", "Kind", "Batch", "Container", "Members", "Docs", "Stage", "Duration", "Error")
	for _, r := range runs {
		t.Row(runRow(r)...)
	}
	cmd.Println(t.Render())
	return nil
}

func runRow(r domain.BatchRun) []string {
	stage := string(r.Stage)
	switch {
	case r.Succeeded():
		stage = successStyle.Render(stage)
	case r.Stage == domain.StageError:
		stage = errorStyle.Render(stage)
	}
	duration := "-"
	if d := r.Duration(); d > 0 {
		duration = d.Round(time.Second).String()
	}
	return []string{
		r.StartedAt.Local().Format("2006-01-02 15:04:05"),
		r.Kind.String(),
		strconv.Itoa(r.Batch),
		orDash(r.ContainerID),
		strconv.Itoa(r.Members),
		strconv.Itoa(r.Documents),
		stage,
		duration,
		orDash(r.ErrorMsg),
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
