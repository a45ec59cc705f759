package main

import (
	"context"
	"errors"
	"os"

	"github.com/yigit/uniadmin/internal/bootstrap"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()
	storage, err := bootstrap.SetupStore(ctx, cfg, lgr)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open store")
	}

	cli := commandLine{
		storage: storage,
		logger:  lgr.With().Str("component", "admin").Logger(),
		out:     os.Stdout,
	}
	err = cli.run(ctx, os.Args)
	storage.Close()
	if err != nil {
		if !errors.Is(err, errHelp) {
			cli.logger.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}
