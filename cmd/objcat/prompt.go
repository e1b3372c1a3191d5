package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var errKeepExisting = errors.New("kept existing file")

// isInteractive reports whether both stdin and stderr are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// checkOverwrite decides whether path may be written. Existing files need
// --force, or a confirmation when running in a terminal.
func checkOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if !isInteractive() {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	var overwrite bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
			Affirmative("Overwrite").
			Negative("Keep").
			Value(&overwrite),
	)).Run()
	if err != nil {
		return err
	}
	if !overwrite {
		return fmt.Errorf("%s: %w", path, errKeepExisting)
	}
	return nil
}
