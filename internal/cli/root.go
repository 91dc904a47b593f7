// Package cli wires the devindex commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/config"
	logpkg "github.com/kailas-cloud/devindex/internal/logger"
	"github.com/kailas-cloud/devindex/internal/version"
)

// app carries what every command needs once the root pre-run has loaded it.
type app struct {
	env     string
	cfgFile string
	cfg     config.Config
	log     *zap.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "devindex",
		Short: "Build, index and search the developer resource corpus",
		Long: `devindex turns heterogeneous developer content (icons, emoji, cheatsheets,
tldr pages, MCP servers, tools) into one normalized search corpus, pushes it
into the search engine and serves category-filtered, paginated search.

Example usage:
  devindex build                 # Build and stem the corpus file
  devindex ingest                # Push changed documents to the engine
  devindex serve                 # Serve POST /search
  devindex search -q "git log"   # Query a running server`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "environment (local, dev, docker, prod)")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is config/<env>.yaml)")

	root.AddCommand(
		newBuildCommand(a),
		newStemCommand(a),
		newIngestCommand(a),
		newServeCommand(a),
		newSearchCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) load(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadFile(a.cfgFile)
	} else {
		a.cfg, err = config.Load(a.env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a.log, err = logpkg.NewLogger(a.env, a.cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	ctx := logpkg.With(logpkg.WithLogger(cmd.Context(), a.log), zap.String("command", cmd.Name()))
	a.log = logpkg.FromContext(ctx)
	cmd.SetContext(ctx)
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get())
		},
	}
}
