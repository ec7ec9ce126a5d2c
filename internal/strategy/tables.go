package strategy

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

var legend = []struct {
	action Action
	text   string
}{
	{Hit, "Hit"},
	{Stand, "Stand"},
	{Split, "Split"},
	{DoubleOrHit, "Double if allowed, otherwise Hit"},
	{DoubleOrStand, "Double if allowed, otherwise Stand"},
	{SplitOrHit, "Split if allowed, otherwise Hit"},
	{SurrenderOrHit, "Surrender if allowed, otherwise Hit"},
}

// Table is one printable basic-strategy chart.
type Table struct {
	Title string
	Rows  []TableRow
}

// TableRow is a player hand label with one action per dealer upcard.
type TableRow struct {
	Label   string
	Actions [columns]Action
}

// Upcards are the column headings shared by every table.
var Upcards = [columns]string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "A"}

// Tables returns the hard, soft and pair charts in display order.
func Tables() []Table {
	return []Table{
		table("Hard Totals", hard, func(l string) string { return l }),
		table("Soft Totals", soft, func(l string) string {
			n, _ := strconv.Atoi(l)
			return "A," + strconv.Itoa(n-11)
		}),
		table("Pairs", pairs, func(l string) string { return l + "," + l }),
	}
}

func table(title string, c *chart, label func(string) string) Table {
	t := Table{Title: title}
	for _, l := range c.labels {
		t.Rows = append(t.Rows, TableRow{Label: label(l), Actions: c.rows[l]})
	}
	return t
}

// WriteTables prints the legend and every chart as aligned plain text.
func WriteTables(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "Legend:")
	for _, l := range legend {
		fmt.Fprintf(tw, "%s\t= %s\n", l.action.Code(), l.text)
	}

	for _, t := range Tables() {
		fmt.Fprintf(tw, "\n%s:\n", t.Title)
		fmt.Fprintf(tw, "\t%s\n", strings.Join(Upcards[:], "\t"))
		for _, r := range t.Rows {
			codes := make([]string, len(r.Actions))
			for i, a := range r.Actions {
				codes[i] = a.Code()
			}
			fmt.Fprintf(tw, "%s\t%s\n", r.Label, strings.Join(codes, "\t"))
		}
	}
	return tw.Flush()
}
