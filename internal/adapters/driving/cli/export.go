package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driving"
)

var (
	exportOut      string
	exportPageSize int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored pairs as a parallel corpus",
	Long: `Writes every stored pair that has a parent body and a positive score to
line-aligned corpus files, oldest first.

The first page of pairs goes to test.from/test.to and every later page to
train.from/train.to. Files are appended to, never truncated; export into an
empty directory for a fresh corpus.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default export.dir or ~/.chatbot/corpus)")
	exportCmd.Flags().IntVar(&exportPageSize, "page-size", 0, "pairs per page (default export.page_size)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if err := requireStore(cmd); err != nil {
		return err
	}
	if exporter == nil {
		return errors.New("export service not configured")
	}
	if newCorpusWriter == nil {
		return errors.New("corpus writer not configured")
	}
	if exportPageSize < 0 {
		return fmt.Errorf("%w: --page-size must be positive", domain.ErrInvalidInput)
	}

	dir, err := exportDir()
	if err != nil {
		return err
	}

	w, err := newCorpusWriter(dir)
	if err != nil {
		return fmt.Errorf("opening corpus: %w", err)
	}

	cmd.Printf("Exporting to %s...\n", w.Dir())

	report, err := exporter.Export(cmd.Context(), w, driving.ExportOptions{
		PageSize: exportPageSize,
		Progress: func(p domain.ExportProgress) {
			cmd.Printf("%s exported %d pages (%d test, %d train)\n",
				p.At.Format(time.DateTime), p.Pages, p.TestRows, p.TrainRows)
		},
	})
	closeErr := w.Close()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("closing corpus: %w", closeErr)
	}

	cmd.Printf("Exported %d pairs in %d pages: %d test, %d train.\n",
		report.Rows(), report.Pages, report.TestRows, report.TrainRows)
	return nil
}

// exportDir picks --out over export.dir.
func exportDir() (string, error) {
	if exportOut != "" || settingsService == nil {
		return exportOut, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Export.Dir, nil
}
