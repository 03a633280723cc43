package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fitchkit/fitch/internal/config"
	"github.com/fitchkit/fitch/internal/logging"
)

const appName = "fitch"

// rootOptions carries the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Interactive natural deduction for propositional logic",
		Long: `fitch builds and checks Fitch-style natural deduction proofs.

Proofs grow line by line under an explicit goal: premises, assumption
blocks, and the introduction and elimination rules for each connective.
The same engine backs the REPL, the batch checker, the HTTP service, and
the full-screen builder.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text, json)")

	cmd.AddCommand(
		replCmd(opts),
		checkCmd(opts),
		serveCmd(opts),
		tuiCmd(opts),
		tableCmd(),
		versionCmd(),
	)
	return cmd
}

// load layers the config file, then the environment, then the explicit
// flags.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOptions) logger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
	})
}
