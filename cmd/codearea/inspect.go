package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/codearea/syntax"
)

func newTokensCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token categories the editor colours a file with",
		Long: `Print one line per token run: line:start-end, category and text.
Columns are 1-based runes; tabs are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.openSession(args[0])
			if err != nil {
				return err
			}
			if s.Language() == "" {
				return fmt.Errorf("tokens: no lexer for %s", args[0])
			}
			a := s.Area()
			w := cmd.OutOrStdout()
			for line := 0; line < a.LineCount(); line++ {
				for _, r := range a.Mapper().Runs(line) {
					if r.Text == "\t" {
						continue
					}
					n := len([]rune(r.Text))
					fmt.Fprintf(w, "%d:%d-%d %s %q\n", line+1, r.Col+1, r.Col+n, r.Category, r.Text)
				}
			}
			return nil
		},
	}
}

func newTreeCmd(g *globals) *cobra.Command {
	var symbols bool
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the syntax tree used for selection expansion",
		Long: `Print the named nodes of a Go file's syntax tree, indented by depth,
followed by any syntax errors. With --symbols, print the symbol index instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.openSession(args[0])
			if err != nil {
				return err
			}
			if s.Tree() == nil {
				return fmt.Errorf("tree: %s is not a Go source", args[0])
			}
			w := cmd.OutOrStdout()
			if symbols {
				printSymbols(w, s.Index())
				return nil
			}
			if bt, ok := s.Tree().(*syntax.BranchTree); ok {
				printTree(w, bt.Root())
			}
			for _, e := range s.SyntaxErrors() {
				fmt.Fprintf(w, "error %s\n", e.Error())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&symbols, "symbols", "s", false, "print declared symbols")
	return cmd
}

func printTree(w io.Writer, root *syntax.Branch) {
	root.Walk(func(n *syntax.Branch, depth int) bool {
		fmt.Fprintf(w, "%s%s %s-%s\n", strings.Repeat("  ", depth), n.Kind(), n.Start(), n.End())
		return true
	})
}

func printSymbols(w io.Writer, ix *syntax.Index) {
	for _, sym := range ix.Symbols() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sym.Start, sym.Kind, sym.Name, sym.Signature)
	}
}

func newHTMLCmd(g *globals) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "html <file>",
		Short: "Export a file as highlighted HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := g.openSession(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("html: %w", err)
				}
				defer func() { err = errors.Join(err, f.Close()) }()
				w = f
			}
			return s.ExportHTML(w)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
