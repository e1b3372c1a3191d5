package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"objcat/cmd/objcat/catalog"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Build objects interactively, one statement per line",
	Long: "Start an interactive shell that applies script statements to a fresh\n" +
		"catalog as you type them. A statement that fails leaves the catalog as it\n" +
		"was. Type :help for the list of commands.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := catalog.NewKinds()
		configDir, err := resolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		if err := cfg.registerKinds(kinds); err != nil {
			return err
		}

		rc := &readline.Config{
			Prompt:          appName + "> ",
			AutoComplete:    replCompleter(kinds),
			InterruptPrompt: "^C",
			EOFPrompt:       ":quit",
		}
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			rc.HistoryFile = filepath.Join(configDir, "repl_history")
		}
		rl, err := readline.NewEx(rc)
		if err != nil {
			return err
		}
		defer rl.Close()

		session := newReplSession(kinds, rl.Stdout())
		fmt.Fprintln(rl.Stderr(), "type :help for commands, :quit to leave")
		for {
			rl.SetPrompt(session.prompt())
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			quit, err := session.exec(line)
			if err != nil {
				fmt.Fprintln(rl.Stderr(), "error:", err)
			}
			if quit {
				return nil
			}
		}
	},
}

func replCompleter(k *catalog.Kinds) *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(":help"),
		readline.PcItem(":report"),
		readline.PcItem(":end"),
		readline.PcItem(":save"),
		readline.PcItem(":kinds"),
		readline.PcItem(":reset"),
		readline.PcItem(":quit"),
		readline.PcItem("extend("),
		readline.PcItem("offset("),
		readline.PcItem("alt("),
	}
	for _, f := range catalog.Faces() {
		items = append(items, readline.PcItem(f.String()+"("))
	}
	for _, name := range k.Names() {
		items = append(items, readline.PcItem(name+"(\""))
	}
	return readline.NewPrefixCompleter(items...)
}
