// Command chatbot builds a conversational training corpus from Reddit
// comment dumps.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/INASIC/Chatbot/internal/adapters/driven/config/file"
	"github.com/INASIC/Chatbot/internal/adapters/driven/corpus"
	"github.com/INASIC/Chatbot/internal/adapters/driven/dump"
	"github.com/INASIC/Chatbot/internal/adapters/driven/storage/postgres"
	"github.com/INASIC/Chatbot/internal/adapters/driven/storage/sqlite"
	"github.com/INASIC/Chatbot/internal/adapters/driving/cli"
	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
	"github.com/INASIC/Chatbot/internal/core/ports/driving"
	"github.com/INASIC/Chatbot/internal/core/services"
	"github.com/INASIC/Chatbot/internal/normalisers/body"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetConfig(&cli.Config{
		LoadSettings: loadSettings,
		OpenStore:    openStore,
		CorpusWriter: func(dir string) (driven.CorpusWriter, error) {
			return corpus.NewWriter(dir)
		},
	})

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func loadSettings(configDir string) (driving.SettingsService, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(configStore), nil
}

// pairBackend is satisfied by both store implementations.
type pairBackend interface {
	PairStore() driven.PairStore
	RunStore() driven.RunStore
	Close() error
}

func openStore(ctx context.Context, settings domain.PipelineSettings, dataDir string) (*cli.StoreServices, error) {
	var (
		backend pairBackend
		err     error
	)
	switch settings.Store.Driver {
	case domain.StoreDriverSQLite:
		backend, err = sqlite.NewStore(dataDir)
	case domain.StoreDriverPostgres:
		backend, err = postgres.NewStore(ctx, settings.Store.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, settings.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	pairs := backend.PairStore()
	runs := backend.RunStore()

	ingest := services.NewIngestService(
		pairs,
		runs,
		dump.NewOpener(os.Stdin),
		body.New(),
		body.NewFilter(settings.Ingest.MaxWords, settings.Ingest.MaxChars),
		settings.Ingest,
	)

	return &cli.StoreServices{
		Ingester: ingest,
		Exporter: services.NewExportService(pairs, settings.Export),
		Stats:    services.NewStatsService(pairs, runs),
		Close:    backend.Close,
	}, nil
}
