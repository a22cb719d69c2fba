// Package cli implements the personal-memory-mcp CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/personalmemory/memory-mcp/internal/config"
	"github.com/personalmemory/memory-mcp/internal/logger"
	"github.com/personalmemory/memory-mcp/internal/storage"
)

var cfgFile string

// RootCmd is the top-level command. Running it bare starts the server, the
// same as the serve subcommand.
var RootCmd = &cobra.Command{
	Use:   "personal-memory-mcp",
	Short: "Personal memory MCP server",
	Long:  "An MCP server that stores personal facts, preferences, memories, relationships, and goals in a single local JSON document.",
}

func init() {
	RootCmd.RunE = runServe
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.personal-memory/config.yaml)")
	RootCmd.PersistentFlags().String("storage", "", "Path of the JSON memory document")
	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	RootCmd.PersistentFlags().Bool("json-log", false, "Log in JSON instead of pretty output")
	RootCmd.PersistentFlags().String("transport", "", "Transport mode: stdio or http")
	RootCmd.PersistentFlags().String("listen", "", "HTTP listen address (only used with http transport)")
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration with flags bound over env, file, and
// defaults, and builds the logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	v, err := config.InitViper(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	bindFlags(v)

	cfg := config.FromViper(v)
	log := logger.New(logger.WithDebug(cfg.Log.Debug), logger.WithJSON(cfg.Log.JSON))
	return cfg, log, nil
}

func bindFlags(v *viper.Viper) {
	flags := RootCmd.PersistentFlags()
	v.BindPFlag("storage.path", flags.Lookup("storage"))
	v.BindPFlag("log.debug", flags.Lookup("debug"))
	v.BindPFlag("log.json", flags.Lookup("json-log"))
	v.BindPFlag("server.transport", flags.Lookup("transport"))
	v.BindPFlag("server.listen", flags.Lookup("listen"))
}

func openStore(cfg *config.Config, log *slog.Logger) (*storage.Store, error) {
	return storage.Open(cfg.Storage.Path,
		storage.WithLogger(log),
		storage.WithQueueUnmatched(cfg.Categorization.QueueUnmatched),
	)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
