// Command tghtml converts assistant markdown to Telegram HTML and builds the
// assistant's prompts from a workspace.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/riverfjs/tghtml"
	"github.com/riverfjs/tghtml/internal/config"
)

// app holds state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tghtml",
		Short: "Markdown to Telegram HTML for an AI assistant",
		Long: `tghtml converts the markdown an assistant replies with into the HTML subset
Telegram accepts (b, i, s, code, pre and a), and assembles the assistant's
system prompt and message history from a workspace.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			tghtml.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("TGHTML_CONFIG"), "Config file (or set TGHTML_CONFIG)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(a.convertCmd(), a.promptCmd(), a.historyCmd())
	return root
}

func newLogger(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := cfg.ParseLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// warn prints a highlighted warning to the command's error stream.
func warn(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow, color.Bold).Fprintf(w, "warning: "+format+"\n", args...)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
