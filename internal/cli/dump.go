package cli

import (
	"github.com/spf13/cobra"
)

func newDumpCommand() *cobra.Command {
	var dot bool

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Dump the internal trees of a document",
		Long: `dump prints the line tree and the anchor tree of a document, colored by
node color. With --dot it writes the rope holding the text in Graphviz DOT
format instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if dot {
				return doc.ToDot(cmd.OutOrStdout())
			}
			doc.Dump(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "write the rope in Graphviz DOT format")
	return cmd
}
