package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed cmd_config_init_config.yml
var initConfigYAML []byte

//go:embed cmd_config_init_objects.yml
var initObjectsYAML []byte

const configInitConfigHeader = "# " + appName + " settings\n" +
	"# Kinds added here are available to every source file.\n\n"

const configInitObjectsHeader = "# " + appName + " objects\n" +
	"# Every *.yml, *.yaml and *.inc file in this directory is built, in name order.\n" +
	"# Quick reference:  " + appName + " example\n" +
	"# Script form:      " + appName + " example --script\n\n"

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise the " + appName + " config directory with starter files",
	Long: "Create the " + appName + " config directory and populate it with starter\n" +
		"files. A single concrete `lamp` object is created so `" + appName + " build`\n" +
		"works right away. More examples are commented out behind sentinel markers\n" +
		"and can be refreshed later with `" + appName + " config update`.\n\n" +
		"Files created:\n" +
		"  <config>/config.yml          extra kinds, default output\n" +
		"  <config>/objects/objects.yml object sources\n\n" +
		"The default config directory follows the same priority as every command:\n" +
		"  --config-dir > $OBJCAT_CONFIG_DIR > $XDG_CONFIG_HOME/objcat > ~/.config/objcat",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		dir, err := resolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		objectsDir := filepath.Join(dir, "objects")
		if err := os.MkdirAll(objectsDir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", objectsDir, err)
		}

		configFile := filepath.Join(dir, configFileName)
		objectsFile := filepath.Join(objectsDir, "objects.yml")

		if err := writeInitFile(configFile, configInitConfigHeader, initConfigYAML, force); err != nil {
			return err
		}
		if err := writeInitFile(objectsFile, configInitObjectsHeader, initObjectsYAML, force); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "initialised %s\n", dir)
		fmt.Fprintf(os.Stderr, "  %s\n", configFile)
		fmt.Fprintf(os.Stderr, "  %s\n", objectsFile)
		fmt.Fprintf(os.Stderr, "\nRun `%s list` to see the catalog.\n", appName)
		return nil
	},
}

func writeInitFile(path, header string, content []byte, force bool) (err error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if header != "" {
		fmt.Fprint(f, header)
	}
	_, err = f.Write(content)
	return err
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite existing files")
}
