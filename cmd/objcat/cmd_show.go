package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"objcat/cmd/objcat/catalog"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show [name]",
	Short:             "Print the report for one object",
	Long:              "Print the report lines for a single object. Without a name, pick one\nwith a fuzzy finder.",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeObjectNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := load()
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			name, err = pickObject(c)
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		rec, err := c.Lookup(name)
		if err != nil {
			return err
		}
		return catalog.WriteObjectReport(os.Stdout, name, rec)
	},
}

// pickObject lets the user choose an object, previewing its report.
func pickObject(c *catalog.Catalog) (string, error) {
	names := c.Names()
	if len(names) == 0 {
		return "", fmt.Errorf("catalog is empty")
	}
	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string { return names[i] },
		fuzzyfinder.WithPromptString("Object: "),
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i < 0 {
				return ""
			}
			return objectReport(c, names[i])
		}),
	)
	if err != nil {
		return "", err
	}
	return names[idx], nil
}

// objectReport returns the report lines for name, or the lookup error text.
func objectReport(c *catalog.Catalog, name string) string {
	rec, err := c.Lookup(name)
	if err != nil {
		return err.Error()
	}
	var b strings.Builder
	_ = catalog.WriteObjectReport(&b, name, rec)
	return b.String()
}
