package nn

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Summary writes a plain table of the given layers, one row per layer, in
// execution order. Layers implementing fmt.Stringer get their description in
// the last column.
func Summary(w io.Writer, layers []Layer) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("  ")
	table.SetHeader([]string{"#", "NAME", "LAYER"})

	for i, layer := range layers {
		desc := ""
		if s, ok := layer.(fmt.Stringer); ok {
			desc = s.String()
		}
		table.Append([]string{fmt.Sprintf("%d", i), layer.Name(), desc})
	}
	table.Render()
}
