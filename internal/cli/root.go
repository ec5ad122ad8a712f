// Package cli provides the Cobra command structure for the textbuf CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/textbuf"
	"github.com/npillmayer/textbuf/textfile"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewRootCommand creates the root textbuf command with all subcommands.
func NewRootCommand() *cobra.Command {
	var debug bool
	var colorMode string

	rootCmd := &cobra.Command{
		Use:   "textbuf",
		Short: "Inspect text files as textbuf documents",
		Long: `textbuf loads text files into documents and reports on their
structure: size, lines and words, the internal trees holding text, lines and
anchors, and the consistency of all of them.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := setColorMode(colorMode); err != nil {
				return err
			}
			level := tracing.LevelError
			if debug {
				level = tracing.LevelDebug
			}
			gtrace.CoreTracer = gologadapter.New()
			gtrace.CoreTracer.SetTraceLevel(level)
			tracing.Select("textbuf").SetTraceLevel(level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug tracing")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newStatCommand())
	rootCmd.AddCommand(newLinesCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}

func setColorMode(mode string) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid color mode %q, expected auto, always or never", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of the terminal attached to stdout, or 0.
func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

func loadDocument(name string) (*textbuf.Document, error) {
	doc, err := textfile.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return doc, nil
}
