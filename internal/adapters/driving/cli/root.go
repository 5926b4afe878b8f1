// Package cli implements the chatbot command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
	"github.com/INASIC/Chatbot/internal/core/ports/driving"
	"github.com/INASIC/Chatbot/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services wired into the commands. Tests assign these directly.
var (
	settingsService driving.SettingsService
	ingester        driving.Ingester
	exporter        driving.Exporter
	statsService    driving.StatsService
	newCorpusWriter CorpusWriterFactory
)

// CorpusWriterFactory opens a corpus writer appending to dir.
// An empty dir selects the writer's default location.
type CorpusWriterFactory func(dir string) (driven.CorpusWriter, error)

// StoreServices are the services that need an open pair store.
type StoreServices struct {
	Ingester driving.Ingester
	Exporter driving.Exporter
	Stats    driving.StatsService

	// Close releases the store. May be nil.
	Close func() error
}

// Config holds the constructors main supplies to the CLI. They run after
// flags are parsed so --config-dir and --data-dir take effect.
type Config struct {
	// LoadSettings builds the settings service for a config directory.
	LoadSettings func(configDir string) (driving.SettingsService, error)

	// OpenStore opens the configured pair store and builds its services.
	OpenStore func(ctx context.Context, settings domain.PipelineSettings, dataDir string) (*StoreServices, error)

	// CorpusWriter opens export output.
	CorpusWriter CorpusWriterFactory
}

var (
	cliConfig  *Config
	storeOpen  bool
	closeStore func() error
)

// SetConfig sets the constructors used to wire services.
func SetConfig(config *Config) {
	cliConfig = config
	if config != nil && config.CorpusWriter != nil {
		newCorpusWriter = config.CorpusWriter
	}
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "Build a conversational corpus from Reddit comment dumps",
	Long: `Chatbot reads monthly Reddit comment dumps, keeps the best-scoring reply
to every parent comment in a pair store, and exports the stored pairs as
line-aligned prompt/reply files for training a conversational model.

Typical use:
  chatbot ingest RC_2015-01.zst
  chatbot export --out ./corpus`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.chatbot)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "SQLite data directory (default ~/.chatbot/data)")
}

// Execute runs the root command and releases the store afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if err := closeServices(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func loadSettings(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if settingsService != nil || cliConfig == nil || cliConfig.LoadSettings == nil {
		return nil
	}
	svc, err := cliConfig.LoadSettings(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsService = svc
	return nil
}

// requireStore opens the pair store the first time a command needs it.
func requireStore(cmd *cobra.Command) error {
	if storeOpen || cliConfig == nil || cliConfig.OpenStore == nil {
		return nil
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	svcs, err := cliConfig.OpenStore(cmd.Context(), *settings, dataDir)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", settings.Store.Driver, err)
	}
	ingester = svcs.Ingester
	exporter = svcs.Exporter
	statsService = svcs.Stats
	closeStore = svcs.Close
	storeOpen = true
	logger.Debug("Opened %s store", settings.Store.Driver)
	return nil
}

func closeServices() error {
	if closeStore == nil {
		return nil
	}
	err := closeStore()
	closeStore = nil
	return err
}
