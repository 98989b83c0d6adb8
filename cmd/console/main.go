package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/token-guard/internal/adapter"
	"github.com/MKhiriev/token-guard/internal/client"
	"github.com/MKhiriev/token-guard/internal/config"
	statushttp "github.com/MKhiriev/token-guard/internal/handler/http"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/metrics"
	"github.com/MKhiriev/token-guard/internal/server"
	"github.com/MKhiriev/token-guard/internal/service"
	"github.com/MKhiriev/token-guard/internal/source"
	"github.com/MKhiriev/token-guard/internal/store"
	"github.com/MKhiriev/token-guard/internal/tui"
	"github.com/MKhiriev/token-guard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	cfg, err := config.GetConsoleConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewFileLogger("token-guard-console", cfg.LogPath)
	if !logger.SetLevel(cfg.LogLevel) {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping debug")
	}
	log.Info().
		Str("version", build.BuildVersion()).
		Str("commit", build.BuildCommit()).
		Str("data_source", cfg.Adapter.DataSource).
		Msg("starting console")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	admin, err := newAdminAdapter(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create admin adapter")
	}

	storages, err := store.NewStorages(ctx, cfg.JournalDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	m := metrics.New()
	services := service.NewConsoleServices(admin, storages.JournalRepository, cfg.Engines, m, log)
	ui := tui.New(services, cfg.PrefsPath, build, log)

	var srv server.Server
	if cfg.ServerAddress != "" {
		handler := statushttp.NewHandler(services.Engines.Monitors(), storages.JournalRepository, m.Handler(), build, log)
		if srv, err = server.NewServer(handler, cfg.ServerAddress, log); err != nil {
			log.Fatal().Err(err).Msg("create status server")
		}
	}

	app, err := client.NewApp(services, ui, srv, log, storages)
	if err != nil {
		log.Fatal().Err(err).Msg("init console app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("console run error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAdminAdapter(cfg *config.ConsoleConfig, log *logger.Logger) (adapter.AdminAdapter, error) {
	if cfg.Adapter.DataSource == config.DataSourceSynthetic {
		return source.NewSyntheticAdapter(uint64(time.Now().UnixNano()), source.DefaultTokenCount, log), nil
	}
	return adapter.NewHTTPAdminAdapter(cfg.Adapter, cfg.App, log)
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
