package main

import (
	"github.com/spf13/cobra"

	"github.com/philipp01105/sessionlog/config"
	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/formatter"
	"github.com/philipp01105/sessionlog/handler/consolehandler"
	"github.com/philipp01105/sessionlog/logger"
)

// app carries the state shared by all subcommands
type app struct {
	configPath string
	session    string
	verbose    bool

	cfg  *config.Config
	diag *logger.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sessionlog",
		Short: "Render log records as session documents",
		Long: `sessionlog renders log records into complete session documents:
a header, one entry per record, and a footer, in plain text, rich text,
XML, HTML or raw form.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.diag != nil {
				return a.diag.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (.json, .json5 or .toml)")
	flags.StringVar(&a.session, "session", "", "session name (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics at debug level")

	// Add subcommands
	rootCmd.AddCommand(newRenderCommand(a))
	rootCmd.AddCommand(newEnginesCommand())

	return rootCmd
}

// setup loads the config and builds the diagnostics logger. Diagnostics
// go to stderr through the raw engine so they carry no session frame.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.session != "" {
		cfg.Session = a.session
	}
	a.cfg = cfg

	h, err := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:  cmd.ErrOrStderr(),
		Engine:  formatter.NewRawEngine(formatter.Config{}),
		Session: core.NewSession("sessionlog", core.SystemClock{}),
	})
	if err != nil {
		return err
	}
	level := core.WarningLevel
	if a.verbose {
		level = core.DebugLevel
	}
	a.diag = logger.NewBuilder().
		WithHandler(h).
		WithLevel(level).
		Build()
	return nil
}
