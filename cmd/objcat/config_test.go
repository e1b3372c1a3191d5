package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"objcat/cmd/objcat/catalog"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(envConfigDir, "/from/env")
		got, err := resolveConfigDir("/from/flag")
		if err != nil || got != "/from/flag" {
			t.Errorf("got %q, %v", got, err)
		}
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv(envConfigDir, "/from/env")
		got, _ := resolveConfigDir("")
		if got != "/from/env" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		got, _ := resolveConfigDir("")
		if got != filepath.Join("/xdg", appName) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/someone")
		got, _ := resolveConfigDir("")
		if got != filepath.Join("/home/someone", ".config", appName) {
			t.Errorf("got %q", got)
		}
	})
}

func TestSplitColon(t *testing.T) {
	got := splitColon("a.yml::b.inc:")
	if !slices.Equal(got, []string{"a.yml", "b.inc"}) {
		t.Errorf("got %v", got)
	}
	if splitColon("") != nil {
		t.Error("empty string should give nil")
	}
}

func TestResolveSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "objects", "b.yml"), "objects: []\n")
	writeFile(t, filepath.Join(dir, "objects", "a.inc"), "")
	writeFile(t, filepath.Join(dir, "objects", "c.yaml"), "objects: []\n")
	writeFile(t, filepath.Join(dir, "objects", "notes.txt"), "ignored")
	if err := os.MkdirAll(filepath.Join(dir, "objects", "sub.yml"), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv(envSources, "/env/one.yml:/env/two.inc")
	got, err := resolveSourceFiles(dir, []string{"flag.yml"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "objects", "a.inc"),
		filepath.Join(dir, "objects", "b.yml"),
		filepath.Join(dir, "objects", "c.yaml"),
		"/env/one.yml",
		"/env/two.inc",
		"flag.yml",
	}
	if !slices.Equal(got, want) {
		t.Errorf("got  %v\nwant %v", got, want)
	}
}

func TestResolveSourceFilesMissingDir(t *testing.T) {
	t.Setenv(envSources, "")
	got, err := resolveSourceFiles(filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v", got, err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := loadConfig(t.TempDir())
		if err != nil || cfg.Output != "" || cfg.Kinds != nil {
			t.Errorf("got %+v, %v", cfg, err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, configFileName), "# nothing yet\n")
		if _, err := loadConfig(dir); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("kinds and output", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, configFileName), "kinds:\n  golem: character\noutput: out.json\n")
		cfg, err := loadConfig(dir)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Output != "out.json" || cfg.Kinds["golem"] != "character" {
			t.Errorf("got %+v", cfg)
		}
		k := catalog.NewKinds()
		if err := cfg.registerKinds(k); err != nil {
			t.Fatal(err)
		}
		if typ, ok := k.Lookup("golem"); !ok || typ != catalog.Character {
			t.Errorf("golem = %v, %v", typ, ok)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, configFileName), "outptu: x\n")
		_, err := loadConfig(dir)
		if err == nil || !strings.Contains(err.Error(), "outptu") {
			t.Errorf("expected unknown field error, got %v", err)
		}
	})

	t.Run("conflicting kind", func(t *testing.T) {
		cfg := Config{Kinds: map[string]string{"tree": "character"}}
		err := cfg.registerKinds(catalog.NewKinds())
		if !errors.Is(err, catalog.ErrKindConflict) {
			t.Errorf("expected ErrKindConflict, got %v", err)
		}
	})

	t.Run("bad type", func(t *testing.T) {
		cfg := Config{Kinds: map[string]string{"golem": "monster"}}
		if err := cfg.registerKinds(catalog.NewKinds()); err == nil {
			t.Error("expected error")
		}
	})
}
