package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/BenjaminWie/docu-buddy/language"
)

// WriteLanguages lists profiles in detection order.
func WriteLanguages(w io.Writer, profiles []*language.Profile) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header([]string{"Language", "Blocks", "Extensions", "Keywords"})
	for _, p := range profiles {
		if err := table.Append([]string{
			p.Name(),
			p.BlockMode().String(),
			strings.Join(p.Extensions(), " "),
			strings.Join(p.BranchingKeywords(), " "),
		}); err != nil {
			return fmt.Errorf("failed to render %s: %w", p.Name(), err)
		}
	}
	return table.Render()
}
