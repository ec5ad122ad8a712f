package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrCheckFailed signals a document with broken internal structures.
var ErrCheckFailed = errors.New("consistency check failed")

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate the internal structures of a loaded document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := doc.Check(); err != nil {
				fmt.Fprintf(out, "%s %s: %v\n", color.RedString("FAIL"), args[0], err)
				return fmt.Errorf("%w: %s", ErrCheckFailed, args[0])
			}
			fmt.Fprintf(out, "%s %s: %d bytes, %d lines\n", color.GreenString("ok"), args[0],
				doc.Len(), doc.LineCount())
			return nil
		},
	}
}
