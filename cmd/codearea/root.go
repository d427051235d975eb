package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/codearea"
	"github.com/iw2rmb/codearea/config"
	"github.com/iw2rmb/codearea/internal/logging"
	"github.com/iw2rmb/codearea/session"
)

// globals holds the persistent flags and what PersistentPreRunE builds
// from them.
type globals struct {
	configPath string
	logFile    string
	logLevel   string

	cfg    config.Config
	log    zerolog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	g := &globals{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "codearea",
		Short:         "A code editing area for the terminal",
		Long:          `codearea edits source files in the terminal with syntax colouring, AST-scoped selection, symbol links and completion.`,
		Version:       codearea.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return g.setup()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return g.close()
		},
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "",
		"config file (default: ~/.config/codearea/config.toml)")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "",
		"write logs to this file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info",
		"log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newEditCmd(g),
		newTokensCmd(g),
		newTreeCmd(g),
		newHTMLCmd(g),
		newCommandsCmd(),
		newVersionCmd(),
	)
	return root
}

func (g *globals) setup() error {
	log, closer, err := logging.Setup(g.logFile, g.logLevel)
	if err != nil {
		return err
	}
	g.log, g.closer = log, closer

	path := g.configPath
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			g.log.Debug().Err(err).Msg("no home directory; using defaults")
			path = ""
		}
	}
	if g.cfg, err = config.Load(path); err != nil {
		return err
	}
	g.log.Debug().Str("config", path).Str("theme", g.cfg.Theme).Msg("configured")
	return nil
}

func (g *globals) close() error {
	if g.closer == nil {
		return nil
	}
	err := g.closer.Close()
	g.closer = nil
	return err
}

// openSession loads path into a session. A missing file opens empty.
func (g *globals) openSession(path string) (*session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	opt := g.cfg.Session(path, string(data))
	opt.Logger = &g.log
	return session.New(opt), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the codearea version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), codearea.Version())
		},
	}
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the command names usable in the [keys] config table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range session.ActionNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
