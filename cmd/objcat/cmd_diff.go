package main

import (
	"fmt"
	"io"

	"objcat/cmd/objcat/catalog"
	"objcat/cmd/objcat/catstore"

	"github.com/spf13/cobra"
)

// diffEntry is one object that differs between two catalogs.
type diffEntry struct {
	name   string
	change byte // '+' added, '-' removed, '~' changed
	detail string
}

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Compare two saved catalogs object by object",
	Long: "Load two saved catalogs (report or JSON, optionally .zst) and list the\n" +
		"objects that were added (+), removed (-) or changed (~). Exits with an\n" +
		"error when they differ, so it can gate a regenerated catalog.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldCat, err := catstore.Load(args[0])
		if err != nil {
			return err
		}
		newCat, err := catstore.Load(args[1])
		if err != nil {
			return err
		}
		entries := diffCatalogs(oldCat, newCat)
		printDiff(cmd.OutOrStdout(), entries)
		if len(entries) > 0 {
			return fmt.Errorf("%d objects differ", len(entries))
		}
		return nil
	},
}

// diffCatalogs compares by name and, for shared names, by report text and
// type. Entries come out in name order.
func diffCatalogs(a, b *catalog.Catalog) []diffEntry {
	var out []diffEntry
	an, bn := a.Names(), b.Names()
	i, j := 0, 0
	for i < len(an) || j < len(bn) {
		switch {
		case j == len(bn) || (i < len(an) && an[i] < bn[j]):
			out = append(out, diffEntry{name: an[i], change: '-'})
			i++
		case i == len(an) || bn[j] < an[i]:
			out = append(out, diffEntry{name: bn[j], change: '+'})
			j++
		default:
			if d := diffObject(a, b, an[i]); d != "" {
				out = append(out, diffEntry{name: an[i], change: '~', detail: d})
			}
			i++
			j++
		}
	}
	return out
}

func diffObject(a, b *catalog.Catalog, name string) string {
	ra, _ := a.Lookup(name)
	rb, _ := b.Lookup(name)
	if ra.Type != rb.Type {
		return fmt.Sprintf("type %s -> %s", ra.Type, rb.Type)
	}
	if objectReport(a, name) == objectReport(b, name) {
		return ""
	}
	return fmt.Sprintf("views %d -> %d, frames %d -> %d",
		len(ra.Views), len(rb.Views), ra.FrameCount(), rb.FrameCount())
}

func printDiff(w io.Writer, entries []diffEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "catalogs are identical")
		return
	}
	for _, e := range entries {
		if e.detail != "" {
			fmt.Fprintf(w, "%c %s  (%s)\n", e.change, e.name, e.detail)
		} else {
			fmt.Fprintf(w, "%c %s\n", e.change, e.name)
		}
	}
}
