package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
)

const (
	rule     = "═══════════════════════════════════════════════════════════════"
	thinRule = "───────────────────────────────────────────────────────────────"
)

func printHeader(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)
}

// printSection prints a titled block; rows are tab-separated label/value lines
func printSection(out io.Writer, title string, rows ...string) {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, thinRule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\n", r)
	}
	w.Flush()
	fmt.Fprintln(out)
}
