package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/walkerscm/codemerge/internal/config"
	"github.com/walkerscm/codemerge/internal/logger"
)

// app carries state shared by subcommands once the root pre-run has loaded
// configuration.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand builds the codemerge command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "codemerge",
		Short: "codemerge - merge a source tree into a single text file",
		Long: `codemerge walks a directory tree, keeps files whose extension is in the
include list and that are not under an excluded directory, and concatenates
them into one text file with a "===== path =====" header per file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default: ./codemerge.yaml or $HOME/.codemerge/codemerge.yaml)")
	cmd.PersistentFlags().String("env", ".env", "path to .env file")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringP("output", "o", "text", "summary format (text, json)")

	cmd.AddCommand(newMergeCmd(a))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command and exits 1 on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) load(cmd *cobra.Command) error {
	flags := cmd.Flags()

	envPath, _ := flags.GetString("env")
	if err := config.LoadEnvFile(envPath, flags.Changed("env")); err != nil {
		return err
	}

	configFile, _ := flags.GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}
