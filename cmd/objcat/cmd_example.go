package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:embed cmd_example_objects.yml
var exampleObjectsYAML []byte

//go:embed cmd_example_objects.inc
var exampleObjectsScript []byte

const exampleYAMLHeader = `# objcat object source reference
# Build:  objcat --file <this-file> build
# Script form of the same ideas: objcat example --script

`

const exampleScriptHeader = `// objcat script source reference
// Build:  objcat --file <this-file>.inc build

`

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a reference object source covering every feature",
	Long: "Print an object source file that demonstrates every feature.\n" +
		"By default the YAML form is printed. Use --script for call notation.\n" +
		"Use --output to write to a file instead of stdout.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		script, _ := cmd.Flags().GetBool("script")

		header, body := exampleYAMLHeader, exampleObjectsYAML
		if script {
			header, body = exampleScriptHeader, exampleObjectsScript
		}

		output, _ := cmd.Flags().GetString("output")
		w := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		fmt.Fprint(w, header)
		if _, err := w.Write(body); err != nil {
			return err
		}

		if output != "" {
			fmt.Fprintf(os.Stderr, "written to %s\n", output)
		}
		return nil
	},
}

func init() {
	exampleCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	exampleCmd.Flags().Bool("script", false, "print the call-notation script form")
}
