package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/codearea/editor"
	"github.com/iw2rmb/codearea/textarea"
)

const reparseDelay = 300 * time.Millisecond

func newEditCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a file",
		Long: `Edit a file in the terminal. A missing file is created on the first save.

ctrl+s saves, ctrl+q quits (twice when there are unsaved changes).
Run "codearea commands" for the names usable in the [keys] config table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Query the background colour before Bubble Tea owns stdin.
			_ = lipgloss.HasDarkBackground()

			path := args[0]
			s, err := g.openSession(path)
			if err != nil {
				return err
			}
			s.Area().SetClipboard(editor.NewTerminalClipboard(os.Stdout))

			focus := textarea.NewFocusContext()
			ed := editor.New(s, editor.Config{
				Name:            filepath.Base(path),
				Keys:            g.cfg.Keys,
				Theme:           g.cfg.Theme,
				ShowLineNumbers: g.cfg.LineNumbers,
				BlinkInterval:   g.cfg.BlinkInterval,
				ReparseDelay:    reparseDelay,
				Focus:           focus,
				Logger:          &g.log,
			})

			p := tea.NewProgram(
				app{ed: ed, path: path, log: g.log},
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running editor: %w", err)
			}
			return nil
		},
	}
}

// app is the program model around one editor: it owns saving and
// quitting.
type app struct {
	ed        editor.Model
	path      string
	quitArmed bool
	log       zerolog.Logger
}

func (a app) Init() tea.Cmd { return a.ed.Init() }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.ed = a.ed.SetSize(msg.Width, msg.Height)
		return a, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			a.quitArmed = false
			a.save()
			return a, nil
		case "ctrl+q":
			if a.ed.Modified() && !a.quitArmed {
				a.quitArmed = true
				a.ed.SetMessage("unsaved changes; ctrl+q again to quit")
				return a, nil
			}
			return a, tea.Quit
		}
		a.quitArmed = false
	}

	var cmd tea.Cmd
	a.ed, cmd = a.ed.Update(msg)
	return a, cmd
}

func (a app) View() string { return a.ed.View() }

func (a app) save() {
	if err := os.WriteFile(a.path, []byte(a.ed.Area().Text()), 0o644); err != nil {
		a.log.Error().Err(err).Str("path", a.path).Msg("save")
		a.ed.SetMessage("save failed: " + err.Error())
		return
	}
	a.ed.MarkSaved()
	a.ed.SetMessage("saved " + a.path)
	a.log.Info().Str("path", a.path).Msg("saved")
}
