// Package cli implements the hypercouple command-line interface.
//
// This package provides commands for coupling the hyperedges of a hypergraph
// document, rendering the result as a diagram, exploring the algorithms
// interactively and serving the engine over HTTP. The CLI is built using
// cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - couple: Print the coupling groups of a document
//   - render: Generate SVG, DOT or JSON output
//   - algorithms: List the available coupling algorithms
//   - explore: Browse the groups of every algorithm in a terminal UI
//   - serve: Run the HTTP API
//
// # Configuration
//
// Settings are read from a TOML file, by default
// $XDG_CONFIG_HOME/hypercouple/config.toml. See [Config].
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercouple/pkg/buildinfo"
	"github.com/matzehuels/hypercouple/pkg/coupling"
	"github.com/matzehuels/hypercouple/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "hypercouple"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Hypercouple groups hyperedges that always expire together",
		Long:         `Hypercouple analyzes directed hypergraphs and collapses groups of edges that are always removed together into single macro-edges, so dependency diagrams stay readable.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/hypercouple/config.toml)")

	root.AddCommand(c.coupleCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.algorithmsCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newEngine creates a coupling engine from the loaded configuration.
func (c *CLI) newEngine() *coupling.Engine {
	return coupling.NewEngine(coupling.Config{
		Limits:      c.Config.Limits,
		Parallelism: c.Config.Engine.Parallelism,
		Logger:      c.Logger,
	})
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	r := pipeline.NewRunner(c.newEngine(), c.Logger)
	r.DefaultAlgorithm = c.Config.Engine.DefaultAlgorithm
	return r
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/hypercouple/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
