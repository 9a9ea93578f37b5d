// Package render writes the arrival board as an aligned text table.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/uq-transit/uqlakes-board/board"
)

var columns = []string{
	"Route Short Name",
	"Route Long Name",
	"Service ID",
	"Headsign",
	"Arrival Time",
	"Live Position",
}

// Table writes rows to w, headers included. An empty row set still prints
// the header line so the user sees the query produced nothing.
func Table(w io.Writer, rows []board.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)

	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.RouteShortName,
			row.RouteLongName,
			row.ServiceID,
			row.Headsign,
			row.ArrivalTime,
			row.LivePosition,
		)
	}
	return tw.Flush()
}
