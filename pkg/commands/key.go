package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/today/pkg/glyph"
	"tableflip.dev/today/pkg/printers"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the marker legend",
		RunE: func(_ *cobra.Command, _ []string) error {
			pp := printers.PrettyPrint{}
			pp.Title("key")
			pp.Glyphs(glyph.DefaultGlyphs()...)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
