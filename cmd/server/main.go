package main

import (
	"context"
	"fmt"

	"github.com/dkustov/imagekeep/internal/config"
	httphandler "github.com/dkustov/imagekeep/internal/handler/http"
	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/server"
	"github.com/dkustov/imagekeep/internal/service"
	"github.com/dkustov/imagekeep/internal/store"
	"github.com/dkustov/imagekeep/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("imagekeep-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(*storages, *cfg, log)
	handler := httphandler.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	sweeper := workers.NewSweeper(storages.AssetRepository, storages.FileStore, log.GetChildLogger())
	sweeper.Start(ctx, cfg.Workers.SweepInterval)
	defer sweeper.Stop()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
