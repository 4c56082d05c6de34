package download

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/williamokano/sftp_downloader/pkg/config"
	"github.com/williamokano/sftp_downloader/pkg/transfer"

	// Import downloaders to register them
	_ "github.com/williamokano/sftp_downloader/pkg/transfer/script"
	_ "github.com/williamokano/sftp_downloader/pkg/transfer/sftp"
)

// Execute performs the single download described by cfg.
// Errors are tagged with a transfer kind and already logged.
func Execute(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	start := time.Now()

	problems, err := config.Validate(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("could not validate configuration")
	}
	for _, problem := range problems {
		logger.Warn().Str("config_file", cfg.File).Str("problem", problem).Msg("configuration problem")
	}

	req := cfg.Request()
	mode := cfg.GetMode()

	log := logger.With().Str("mode", mode).Logger()

	log.Debug().Str("remote_dir", cfg.Get(config.KeyTargetFilePath)).Msg("remote directory")
	log.Info().Str("host", req.Host).Int("port", req.Port).Msg("connecting")
	log.Info().Str("file", cfg.Get(config.KeyTargetFile)).Msg("downloading file")

	downloader, err := transfer.NewFactory().Create(ctx, transfer.Config{
		Mode:    mode,
		Options: cfg.DownloaderOptions(),
		Logger:  log,
	})
	if err != nil {
		log.Error().Err(err).Msg("transfer failed")
		return err
	}

	if err := downloader.Download(ctx, req); err != nil {
		event := log.Error().Err(err)
		if code, ok := transfer.ExitCode(err); ok {
			event = event.Int("exit_code", code)
		}
		event.Dur("duration", time.Since(start)).Msg("transfer failed")
		return err
	}

	log.Debug().
		Str("remote_file", req.RemotePath).
		Str("local_file", req.LocalPath).
		Dur("duration", time.Since(start)).
		Msg("download complete")

	return nil
}
