package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent ingest runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "number of runs to show (0 for all)")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if err := requireStore(cmd); err != nil {
		return err
	}
	if ingester == nil {
		return errors.New("ingest service not configured")
	}

	runs, err := ingester.Runs(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No ingest runs recorded.")
		return nil
	}

	s := stylesFor(cmd.OutOrStdout())
	cmd.Println(s.renderTitle(fmt.Sprintf("%-36s  %-19s  %-9s  %12s  %10s  %s",
		"ID", "STARTED", "STATUS", "READ", "PAIRED", "DURATION")))
	for _, run := range runs {
		cmd.Printf("%-36s  %-19s  %s  %12d  %10d  %s\n",
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			padStatus(s, string(run.Status)),
			run.Counters.Read,
			run.Counters.Paired,
			run.Duration().Round(time.Second),
		)
	}
	return nil
}

// padStatus pads after styling so escape codes do not break alignment.
func padStatus(s styles, status string) string {
	return s.renderStatus(status) + strings.Repeat(" ", max(0, 9-len(status)))
}
