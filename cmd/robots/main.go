package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/robots-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/robots-cli/internal/adapters/driven/config/memory"
	sourcefile "github.com/custodia-labs/robots-cli/internal/adapters/driven/source/file"
	"github.com/custodia-labs/robots-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/robots-cli/internal/core/ports/driven"
	"github.com/custodia-labs/robots-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(wire)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// wire builds the services from the global flags.
func wire(opts cli.Options) (*cli.Services, error) {
	var store driven.ConfigStore
	if opts.NoConfig {
		store = memory.NewConfigStore()
	} else {
		fileStore, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
		store = fileStore
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	robotsService := services.NewRobotsService(sourcefile.NewSource(), *settings)

	return &cli.Services{
		Robots:   robotsService,
		Settings: settingsService,
	}, nil
}
