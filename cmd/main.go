package main

import (
	"context"
	"errors"
	"os"

	"github.com/mvx-app/mvx/internal/services"
	"github.com/mvx-app/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("failed to load %s: %v", configPath, err)
		}
	}

	var catalog services.Catalog
	if svc, err := services.NewTMDBService(config.Catalog, config.Search.RateLimit, nil); err == nil {
		catalog = svc
	} else {
		logger.Debugf("catalog unavailable: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Catalog:    catalog,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "mvx",
		Usage:    "Search the movie catalog and keep a local list of favorites",
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
