// Package cli provides the cobra command tree for the robots binary.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/robots-cli/internal/core/ports/driving"
	"github.com/custodia-labs/robots-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services set by SetServices or built by the ServiceFactory.
var (
	robotsService   driving.RobotsService
	settingsService driving.SettingsService
)

// Global flags.
var (
	verbose   bool
	configDir string
	noConfig  bool
)

// Options are the global flags passed to a ServiceFactory.
type Options struct {
	// ConfigDir overrides the configuration directory. Empty uses ~/.robots.
	ConfigDir string

	// NoConfig keeps settings in memory and never touches disk.
	NoConfig bool
}

// Services groups the driving ports the commands call.
type Services struct {
	Robots   driving.RobotsService
	Settings driving.SettingsService
}

// ServiceFactory builds services once the global flags are parsed.
type ServiceFactory func(opts Options) (*Services, error)

var serviceFactory ServiceFactory

var rootCmd = &cobra.Command{
	Use:   "robots",
	Short: "Decide what a crawler may fetch under a robots.txt file",
	Long: `robots parses robots.txt files and decides whether a crawler may fetch a URL.

It follows RFC 9309 and the Google matching rules: the most specific
user-agent group applies, the longest matching pattern wins, and Allow
wins ties. Crawl-delay, Request-rate and Content-Signal are reported for
the selected group.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline steps to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.robots)")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "ignore the configuration file and use defaults")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects ready-made services. Commands use them as is.
func SetServices(s *Services) {
	if s == nil {
		robotsService, settingsService = nil, nil
		return
	}
	robotsService = s.Robots
	settingsService = s.Settings
}

// SetServiceFactory registers the function that builds services from the
// global flags. It runs before any command that needs services.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if serviceFactory == nil {
		return nil
	}
	services, err := serviceFactory(Options{ConfigDir: configDir, NoConfig: noConfig})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

func requireRobots() error {
	if robotsService == nil {
		return errors.New("robots service not configured")
	}
	return nil
}
