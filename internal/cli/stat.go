package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/npillmayer/textbuf/metrics"
	"github.com/spf13/cobra"
)

func newStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat FILE",
		Short: "Print size, line and word counts of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			snap := doc.CreateSnapshot()
			words, err := metrics.Count(snap, 0, snap.Len(), &metrics.WordsMetric{})
			if err != nil {
				return err
			}
			lm := &metrics.LinesMetric{}
			if err := metrics.Apply(snap, 0, snap.Len(), lm); err != nil {
				return err
			}
			label := color.New(color.Bold).SprintFunc()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", label("File:        "), args[0])
			fmt.Fprintf(out, "%s %d\n", label("Bytes:       "), doc.Len())
			fmt.Fprintf(out, "%s %d\n", label("Lines:       "), doc.LineCount())
			fmt.Fprintf(out, "%s %d\n", label("Words:       "), words)
			fmt.Fprintf(out, "%s %d\n", label("Longest line:"), lm.Longest())
			return nil
		},
	}
}
