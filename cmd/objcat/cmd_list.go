package main

import (
	"fmt"
	"io"
	"os"

	"objcat/cmd/objcat/catalog"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all objects in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := load()
		if err != nil {
			return err
		}
		printObjects(os.Stdout, collectObjects(c))
		return nil
	},
}

// objectEntry is one line of the object listing.
type objectEntry struct {
	name   string
	kind   catalog.ObjectType
	views  int
	frames int
}

func collectObjects(c *catalog.Catalog) []objectEntry {
	out := make([]objectEntry, 0, c.Len())
	for name, rec := range c.All() {
		out = append(out, objectEntry{
			name:   name,
			kind:   rec.Type,
			views:  len(rec.Views),
			frames: rec.FrameCount(),
		})
	}
	return out
}

// printObjects prints all entries with the names aligned.
func printObjects(w io.Writer, entries []objectEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no objects found")
		return
	}

	maxLen := 0
	for _, e := range entries {
		maxLen = max(maxLen, len(e.name))
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  [%s, %d views, %d frames]\n", maxLen, e.name, e.kind, e.views, e.frames)
	}
}
