// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/naka-gawa/starz/internal/config"
	"github.com/naka-gawa/starz/internal/gateway"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "starz",
	Short: "Look up a GitHub user's repositories and their stars.",
	Long: `starz looks up the repositories of a GitHub user, either through the
listing endpoint of a starz server or straight from the GitHub API, and
shows each repository's star count.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./starz.yaml or $HOME/.config/starz/starz.yaml)")
	rootCmd.PersistentFlags().String("source", "", "Where to look users up: listing, rest or graphql (default listing)")
	rootCmd.PersistentFlags().String("endpoint", "", "Base URL of the starz server used by the listing source (default "+config.DefaultEndpoint+")")
}

// newLogger discards everything unless --verbose is set, in which case it
// logs to standard error.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadConfig reads the configuration for cmd from file, environment and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(configFile, cmd.Flags())
}

// newSource builds the gateway selected by cfg. The returned close function
// must be called when the source is no longer needed.
func newSource(cfg *config.Config, logger *log.Logger) (gateway.Source, func(), error) {
	switch cfg.Source {
	case config.SourceListing:
		g := gateway.NewListingGateway(cfg.Endpoint, logger)
		return g, func() { _ = g.Close() }, nil
	case config.SourceREST, config.SourceGraphQL:
		api := gateway.APIREST
		if cfg.Source == config.SourceGraphQL {
			api = gateway.APIGraphQL
		}
		g, err := gateway.NewGitHubGateway(api, cfg.GitHubToken, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		return g, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
