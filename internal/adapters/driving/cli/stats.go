package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pair store statistics",
	Long: `Shows how many pairs are stored, how many have a parent body, how many
would be exported, and a summary of the most recent ingest run.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete pairs without a parent body",
	Long: `Deletes stored pairs whose parent body was never found. These rows are
never exported. Run this only after every dump has been ingested: a later
reply to the same parent may still pair with it.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pruneCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := requireStore(cmd); err != nil {
		return err
	}
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	st, err := statsService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	s := stylesFor(cmd.OutOrStdout())

	rows := [][2]string{
		{"Pairs", fmt.Sprint(st.Pairs.Total)},
		{"With parent", fmt.Sprint(st.Pairs.Paired)},
		{"Exportable", fmt.Sprint(st.Pairs.Exportable)},
	}
	if run := st.LastRun; run != nil {
		rows = append(rows,
			[2]string{"Last run", run.ID},
			[2]string{"Started", run.StartedAt.Local().Format(time.DateTime)},
			[2]string{"Status", s.renderStatus(string(run.Status))},
			[2]string{"Records read", fmt.Sprint(run.Counters.Read)},
		)
		if run.Error != "" {
			rows = append(rows, [2]string{"Error", run.Error})
		}
	} else {
		rows = append(rows, [2]string{"Last run", "none"})
	}

	var b strings.Builder
	b.WriteString(s.renderTitle("Pair Store"))
	b.WriteString("\n")
	b.WriteString(formatRows(s, rows))

	cmd.Println(s.renderBox(b.String()))
	return nil
}

// formatRows aligns label/value rows.
func formatRows(s styles, rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := r[0] + ":" + strings.Repeat(" ", width-lipgloss.Width(r[0])+1)
		lines = append(lines, s.renderLabel(label)+s.renderValue(r[1]))
	}
	return strings.Join(lines, "\n")
}

func runPrune(cmd *cobra.Command, _ []string) error {
	if err := requireStore(cmd); err != nil {
		return err
	}
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	n, err := statsService.Prune(cmd.Context())
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	cmd.Printf("Pruned %d unpaired rows.\n", n)
	return nil
}
