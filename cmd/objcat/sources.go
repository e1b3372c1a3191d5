package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"objcat/cmd/objcat/catalog"
	"objcat/cmd/objcat/catstore"
	"objcat/cmd/objcat/objscript"
	"objcat/cmd/objcat/objyaml"
	"objcat/pkg/lib"
)

type sourceKind int

const (
	sourceUnknown sourceKind = iota
	sourceYAML
	sourceScript
)

func sourceKindOf(path string) sourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return sourceYAML
	case ".inc", ".objs":
		return sourceScript
	default:
		return sourceUnknown
	}
}

// source is one parsed input file. Exactly one of doc and calls is set.
type source struct {
	path  string
	doc   *objyaml.Document
	calls []objscript.Call
}

func readSources(paths []string) ([]source, error) {
	sources := make([]source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("source file %s: %w", path, err)
		}
		src := source{path: path}
		switch sourceKindOf(path) {
		case sourceYAML:
			doc, err := objyaml.Parse(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			src.doc = &doc
		case sourceScript:
			calls, err := objscript.Parse(path, bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			src.calls = calls
		default:
			return nil, fmt.Errorf("source file %s: unsupported extension (want .yml, .yaml, .inc or .objs)", path)
		}
		logger.Printf("read %s", path)
		sources = append(sources, src)
	}
	return sources, nil
}

// lower turns the source into instructions. locate maps an instruction
// index back to a place in the file for error messages.
func (s source) lower(k *catalog.Kinds) (instrs []catalog.Instruction, locate func(int) string, err error) {
	if s.doc != nil {
		instrs, err = s.doc.Instructions(k)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", s.path, err)
		}
		return instrs, func(int) string { return s.path }, nil
	}
	prog, err := objscript.Lower(s.calls, k)
	if err != nil {
		return nil, nil, err
	}
	return prog.Instructions, func(i int) string {
		if pos, ok := prog.Locate(i); ok {
			return pos.String()
		}
		return s.path
	}, nil
}

// buildSources builds one catalog from all sources in order. Kinds from the
// config and from every YAML document are registered before any source is
// lowered, so a kind may be used before the file that declares it.
func buildSources(cfg Config, sources []source) (*catalog.Catalog, error) {
	start := time.Now()
	kinds := catalog.NewKinds()
	if err := cfg.registerKinds(kinds); err != nil {
		return nil, err
	}
	for _, s := range sources {
		if s.doc == nil {
			continue
		}
		if err := s.doc.RegisterKinds(kinds); err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
	}

	cur := catalog.NewCursor()
	for _, s := range sources {
		instrs, locate, err := s.lower(kinds)
		if err != nil {
			return nil, err
		}
		for i, in := range instrs {
			if err := cur.Apply(in); err != nil {
				return nil, fmt.Errorf("%s: %w", locate(i), err)
			}
		}
		logger.Printf("applied %d instructions from %s", len(instrs), s.path)
	}
	if err := cur.Apply(catalog.EndStream{}); err != nil {
		return nil, err
	}
	c, err := cur.Catalog()
	if err != nil {
		return nil, err
	}
	logger.Printf("built %d objects from %d sources in %s", c.Len(), len(sources), time.Since(start))
	return c, nil
}

// load returns the catalog the current command works on: a saved catalog
// when --from is set, otherwise one built from the resolved sources.
func load() (*catalog.Catalog, error) {
	if flagFrom != "" {
		logger.Printf("loading saved catalog %s", flagFrom)
		return catstore.Load(flagFrom)
	}
	configDir, err := resolveConfigDir(flagConfigDir)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	files, err := resolveSourceFiles(configDir, flagFiles)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, lib.WithHint(
			fmt.Errorf("no object sources found in %s", filepath.Join(configDir, "objects")),
			fmt.Sprintf("run `%s config init`, set $%s, or use --file", appName, envSources),
		)
	}
	sources, err := readSources(files)
	if err != nil {
		return nil, err
	}
	return buildSources(cfg, sources)
}
