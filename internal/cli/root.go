// Package cli wires the nlgen commands together.
package cli

import (
	"context"
	"fmt"

	"github.com/rewired-gh/nlgen/internal/config"
	"github.com/rewired-gh/nlgen/internal/logger"
	"github.com/rewired-gh/nlgen/internal/storage"
	"github.com/spf13/cobra"
)

const version = "v0.1.0"

// rootOptions holds global flags and the configuration loaded from them
type rootOptions struct {
	cfgFile  string
	bankPath string
	verbose  bool

	// cfg and bankStore are populated by the root PersistentPreRunE
	cfg       *config.Config
	bankStore *storage.Store
}

func (o *rootOptions) store() *storage.Store {
	return o.bankStore
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nlgen",
		Short: "nlgen - describe numeric changes in plain sentences",
		Long: `nlgen turns an old and a new value into a sentence describing the change.

The growth between the two values is classified into a polarity
(positive, negative, neutral) and an intensity level from -3 to 3, and a
sentence is picked from a template bank keyed by data type, polarity and level.

Use the "default" data type to skip classification and render the
default/na/na templates.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (NLGEN_*)
3. Config file (--config)
4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			if opts.bankPath != "" {
				loaded.Bank.Path = opts.bankPath
			}
			if opts.verbose {
				loaded.Logging.Level = "debug"
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger.Init(loaded.Logging.Level, loaded.Logging.Format)
			if opts.cfgFile != "" {
				logger.Debug("Configuration loaded from %s", opts.cfgFile)
			}
			opts.cfg = loaded
			opts.bankStore = storage.New(loaded.Bank.CacheTTL, 0o644, 0o755)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: built-in defaults plus NLGEN_* environment)")
	cmd.PersistentFlags().StringVar(&opts.bankPath, "bank", "", "template bank file, overrides bank.path")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(opts),
		newReportCmd(opts),
		newTemplateCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nlgen %s\n", version)
		},
	}
}
