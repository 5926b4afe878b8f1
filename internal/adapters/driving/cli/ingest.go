package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driving"
)

var ingestSkip int64

var ingestCmd = &cobra.Command{
	Use:   "ingest <dump>...",
	Short: "Fold comment dumps into the pair store",
	Long: `Reads one or more newline-delimited JSON comment dumps and keeps the
best-scoring acceptable reply to every parent comment.

Dumps may be plain, .zst, .gz, .bz2 or .xz compressed. Use - to read from
standard input. All dumps given are processed in order as a single run, and
pending writes are flushed once the last dump is exhausted.

Use --skip to resume an interrupted run: the first N records are read and
counted but not processed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().Int64Var(&ingestSkip, "skip", 0, "records to skip before processing")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := requireStore(cmd); err != nil {
		return err
	}
	if ingester == nil {
		return errors.New("ingest service not configured")
	}
	if ingestSkip < 0 {
		return fmt.Errorf("%w: --skip must not be negative", domain.ErrInvalidInput)
	}

	cmd.Printf("Ingesting %d dump(s)...\n", len(args))

	run, err := ingester.Ingest(cmd.Context(), args, driving.IngestOptions{
		Skip: ingestSkip,
		Progress: func(p domain.IngestProgress) {
			cmd.Printf("%s read %d records, paired %d, stored %d (%s)\n",
				p.At.Format(time.DateTime), p.Counters.Read, p.Counters.Paired,
				p.Counters.Inserted+p.Counters.Replaced, p.Source)
		},
	})
	if run != nil {
		printRunSummary(cmd, run)
	}
	if errors.Is(err, context.Canceled) {
		return errors.New("ingest cancelled; pending writes were flushed")
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}

func printRunSummary(cmd *cobra.Command, run *domain.IngestRun) {
	c := run.Counters
	cmd.Printf("Run %s %s in %s\n", run.ID, run.Status, run.Duration().Round(time.Millisecond))
	cmd.Printf("  Read:            %d\n", c.Read)
	cmd.Printf("  Paired:          %d\n", c.Paired)
	cmd.Printf("  Inserted:        %d\n", c.Inserted)
	cmd.Printf("  Replaced:        %d\n", c.Replaced)
	cmd.Printf("  Rejected:        %d\n", c.Rejected)
	cmd.Printf("  Discarded:       %d\n", c.Discarded)
	cmd.Printf("  Skipped:         %d\n", c.Skipped)
	if c.LookupFailures > 0 {
		cmd.Printf("  Lookup failures: %d\n", c.LookupFailures)
	}
	if c.FailedWrites > 0 {
		cmd.Printf("  Failed writes:   %d\n", c.FailedWrites)
	}
}
