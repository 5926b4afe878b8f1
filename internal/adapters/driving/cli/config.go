package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pipeline settings",
	Long: `View and change the settings stored in config.toml.

Settings are addressed by dotted keys such as ingest.min_score. Unset keys
use their defaults.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it to config.toml.

Keys:
  store.driver           sqlite or postgres
  store.dsn              Postgres connection string
  ingest.min_score       lowest reply score stored
  ingest.max_words       longest accepted body in words
  ingest.max_chars       longest accepted body in characters
  ingest.batch_size      pending writes that trigger a flush
  ingest.progress_every  records between progress lines
  ingest.lookup_failure  open or abort
  export.page_size       pairs per export page
  export.progress_pages  pages between progress lines
  export.dir             corpus output directory`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	for _, key := range settingsService.Keys() {
		cmd.Printf("  %-22s %s\n", key, settingValue(settings, key))
	}
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

// settingValue formats the value of key for display.
func settingValue(s *domain.PipelineSettings, key string) string {
	switch key {
	case "store.driver":
		return s.Store.Driver.String()
	case "store.dsn":
		return maskDSN(s.Store.DSN)
	case "ingest.min_score":
		return fmt.Sprint(s.Ingest.MinScore)
	case "ingest.max_words":
		return fmt.Sprint(s.Ingest.MaxWords)
	case "ingest.max_chars":
		return fmt.Sprint(s.Ingest.MaxChars)
	case "ingest.batch_size":
		return fmt.Sprint(s.Ingest.BatchSize)
	case "ingest.progress_every":
		return fmt.Sprint(s.Ingest.ProgressEvery)
	case "ingest.lookup_failure":
		return s.Ingest.LookupFailure.String()
	case "export.page_size":
		return fmt.Sprint(s.Export.PageSize)
	case "export.progress_pages":
		return fmt.Sprint(s.Export.ProgressPages)
	case "export.dir":
		if s.Export.Dir == "" {
			return "(default)"
		}
		return s.Export.Dir
	default:
		return "?"
	}
}

// maskDSN hides the password of a URL-style connection string.
func maskDSN(dsn string) string {
	if dsn == "" {
		return "(not set)"
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "****"
	}
	return u.Redacted()
}
