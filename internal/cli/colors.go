package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wellmap/wellmap/pkg/platemap"
)

// swatchSize is the number of colors shown per scheme.
const swatchSize = 12

func (c *CLI) colorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the available color schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := platemap.ColormapNames()
			width := 0
			for _, n := range names {
				width = max(width, len(n))
			}
			for _, name := range names {
				cmap, err := platemap.LookupColormap(name)
				if err != nil {
					return err
				}
				var swatch strings.Builder
				for _, clr := range cmap.Colors(swatchSize) {
					swatch.WriteString(legendStyle(clr).Render(" "))
				}
				label := fmt.Sprintf("%-*s", width, name)
				if name == platemap.DefaultColormap {
					label = StyleHighlight.Render(label)
				}
				fmt.Fprintln(c.Stdout, label+"  "+swatch.String())
			}
			return nil
		},
	}
}
