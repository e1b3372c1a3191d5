package main

import (
	"objcat/pkg/lib"
)

var (
	flagFiles     []string
	flagConfigDir string
	flagFrom      string
	flagVerbose   bool
)

func main() {
	rootCmd.AddCommand(
		newBuildCommand(),
		listCmd,
		showCmd,
		browseCmd,
		checkCmd,
		statsCmd,
		replCmd,
		diffCmd,
		exampleCmd,
		configCmd,
	)

	rootCmd.PersistentFlags().StringArrayVarP(&flagFiles, "file", "f", nil,
		"object source file, .yml or .inc (repeatable; default: ~/.config/"+appName+"/objects/*)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"config directory (default: $"+envConfigDir+" or ~/.config/"+appName+")")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "",
		"read a saved catalog (.txt, .json, optionally .zst) instead of building sources")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"trace source loading and build steps on stderr")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		lib.Exit(err)
	}
}
