// Package cli implements the tonlaunch command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/branched-services/go-tonlaunch/internal/config"
	"github.com/branched-services/go-tonlaunch/internal/output"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
	logLevel     string
	dryRun       bool

	// Shared state set during PersistentPreRun
	cfg       *config.Config
	logger    zerolog.Logger
	formatter output.Formatter
	chain     Backend
)

var rootCmd = &cobra.Command{
	Use:   "tonlaunch",
	Short: "Operate presale, jetton and airdrop contracts on TON",
	Long: `tonlaunch reads and administers the presale (crowdfunding), deposit bill,
jetton minter and Merkle airdrop contracts of a token launch.

Read commands talk to a lite server from the configured global config.
Write commands sign with the wallet whose mnemonic is held in the
environment variable named by wallet.seed_env. Use --dry-run to print the
encoded message body instead of sending it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if outputFormat != "" {
			cfg.Output = outputFormat
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = newLogger(cmd.ErrOrStderr(), cfg.Log)
		formatter = output.NewFormatter(cfg.Output)
		if chain == nil {
			chain = &liteBackend{}
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing purposes.
func RootCmd() *cobra.Command {
	return rootCmd
}

// SetBackend replaces the chain connection, e.g. with an in-memory fake.
func SetBackend(b Backend) {
	chain = b
}

func newLogger(w io.Writer, c config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// commandContext bounds a command by the configured network timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, cfg.Network.Timeout)
}

func render(cmd *cobra.Command, data any) error {
	out, err := formatter.Format(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tonlaunch/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml (default \"table\")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print the encoded message instead of sending it")
}
