package builder

import (
	"fmt"
	"io"

	"github.com/bmeg/sitebundle/manifest"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// WriteSummary prints one row per bundled file followed by totals.
func WriteSummary(w io.Writer, site *manifest.Site) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Kind", "Content-Type", "Size", "SHA-1"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, f := range site.Files {
		ct := f.ContentType
		if ct == "" {
			ct = "-"
		}
		table.Append([]string{f.Path, f.Kind.String(), ct, humanize.Bytes(f.Size), f.Hash[:12]})
	}
	sum := site.Summary()
	table.SetFooter([]string{
		fmt.Sprintf("%d files", sum.FileCount),
		fmt.Sprintf("%d text / %d binary", sum.TextCount, sum.BinaryCount),
		"",
		humanize.Bytes(sum.TotalSize),
		"",
	})
	table.Render()
}
