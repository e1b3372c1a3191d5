package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName + " [command]",
	Short: "Build and inspect object view catalogs",
	Long: appName + " turns object sources into a catalog of views: for every object, the\n" +
		"sprite frames shown for each facing and extent, plus pixel offsets.\n\n" +
		"Sources are YAML documents (see `" + appName + " example`) or call-notation\n" +
		"scripts (.inc). They are read from <config>/objects/, then $" + envSources + ",\n" +
		"then every --file flag, and built in that order into one catalog.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logger.SetOutput(os.Stderr)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// completeObjectNames provides shell completion for commands taking an
// object name. Build errors disable completion rather than printing.
func completeObjectNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	c, err := load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var suggestions []string
	for _, name := range c.Names() {
		if strings.HasPrefix(name, toComplete) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
