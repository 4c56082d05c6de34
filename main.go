package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/williamokano/sftp_downloader/pkg/config"
	"github.com/williamokano/sftp_downloader/pkg/download"
	"github.com/williamokano/sftp_downloader/pkg/logger"
)

func main() {
	// Initialize logger with default settings until the config is read
	logger.Init("info", "json")
	log := logger.Get()

	log.Info().Msg("download started")

	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		log.Error().Err(err).Str("config_file", config.DefaultFile).Msg("could not load configuration from the current directory")
		log.Error().Msg("download failed")
		os.Exit(1)
	}

	logger.Init(cfg.GetLogLevel(), cfg.GetLogFormat())
	log = logger.Get()
	log.Info().Str("config_file", cfg.File).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := download.Execute(ctx, cfg, *log); err != nil {
		log.Error().Err(err).Msg("download failed")
		stop()
		os.Exit(1)
	}

	log.Info().Msg("download succeeded")
}
