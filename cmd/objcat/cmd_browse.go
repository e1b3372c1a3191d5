package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog in an interactive table",
	Long:  "Browse the catalog in a terminal table. Without a terminal the object\nlisting is printed instead.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := load()
		if err != nil {
			return err
		}
		if !isInteractive() {
			printObjects(os.Stdout, collectObjects(c))
			return nil
		}
		p := tea.NewProgram(newBrowseModel(c), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}
