package main

import (
	"errors"
	"fmt"
	"os"

	"objcat/cmd/objcat/catstore"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// formatValue is a pflag.Value for --format.
type formatValue struct {
	format catstore.Format
}

var _ pflag.Value = (*formatValue)(nil)

func (v *formatValue) String() string { return v.format.String() }
func (v *formatValue) Type() string   { return "format" }

func (v *formatValue) Set(s string) error {
	f, err := catstore.ParseFormat(s)
	if err != nil {
		return err
	}
	v.format = f
	return nil
}

func newBuildCommand() *cobra.Command {
	var (
		output string
		format formatValue
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the catalog and write it out",
		Long: "Build the catalog from all sources and write it as a text report (default)\n" +
			"or JSON. The format follows the output name (.json, .txt, a trailing .zst\n" +
			"compresses) unless --format is given. Without -o the config's output path\n" +
			"is used, and without either the catalog goes to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load()
			if err != nil {
				return err
			}

			if output == "" {
				configDir, err := resolveConfigDir(flagConfigDir)
				if err != nil {
					return err
				}
				cfg, err := loadConfig(configDir)
				if err != nil {
					return err
				}
				output = cfg.Output
			}

			f := format.format
			if output == "" || output == "-" {
				if err := catstore.Encode(os.Stdout, c, f); err != nil {
					return err
				}
			} else {
				if !cmd.Flags().Changed("format") {
					f, _ = catstore.FormatFor(output)
				}
				if err := checkOverwrite(output, force); err != nil {
					if errors.Is(err, errKeepExisting) {
						fmt.Fprintf(os.Stderr, "%v\n", err)
						return nil
					}
					return err
				}
				if err := catstore.Save(output, c, f); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Fprintf(os.Stderr, "written to %s (%s)\n", output, f)
			}

			fmt.Fprintf(os.Stderr, "Total objects: %d\n", c.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: config output, else stdout; - for stdout)")
	cmd.Flags().Var(&format, "format", "output format: report or json")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing output file without asking")
	return cmd
}
