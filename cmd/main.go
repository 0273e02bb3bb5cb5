package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/ccx/internal/services"
	"github.com/desertthunder/ccx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	checker := services.NewCheckerService(config.Checker.BaseURL, nil)
	if config.Credentials.Spotify.AccessToken != "" {
		checker.WithToken(config.Credentials.Spotify.AccessToken)
	}
	if config.Checker.HeadersPath != "" {
		if headers, err := shared.ParseCurlFile(config.Checker.HeadersPath); err == nil {
			checker.WithSessionHeaders(headers)
		} else {
			logger.Warn("failed to parse session headers", "path", config.Checker.HeadersPath, "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Checker:    checker,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "ccx",
		Usage:    "Check Spotify tracks and playlists for copyright-free music",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
