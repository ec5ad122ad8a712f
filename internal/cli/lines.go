package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLinesCommand() *cobra.Command {
	var from, count int

	cmd := &cobra.Command{
		Use:   "lines FILE",
		Short: "Print lines of a file with their offsets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if from < 1 || from > doc.LineCount() {
				return fmt.Errorf("line %d out of range, document has %d lines", from, doc.LineCount())
			}
			last := doc.LineCount()
			if count > 0 {
				last = min(last, from+count-1)
			}
			number := color.New(color.FgHiBlack).SprintfFunc()
			width := terminalWidth()
			out := cmd.OutOrStdout()
			for n := from; n <= last; n++ {
				line, err := doc.LineByNumber(n)
				if err != nil {
					return err
				}
				text, err := doc.LineText(n)
				if err != nil {
					return err
				}
				prefix := fmt.Sprintf("%6d %8d+%-4d ", line.Number, line.StartOffset, line.ExactLength)
				if width > len(prefix) {
					text = truncate(text, width-len(prefix))
				}
				fmt.Fprintf(out, "%s%s\n", number("%s", prefix), text)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 1, "first line to print")
	cmd.Flags().IntVar(&count, "count", 0, "number of lines to print, 0 for all")
	return cmd
}

// truncate cuts s to at most n bytes, at a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
