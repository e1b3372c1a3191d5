package objyaml

import (
	"errors"
	"strings"
	"testing"

	"objcat/cmd/objcat/catalog"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func requireBuildOK(t *testing.T, yml string) *catalog.Catalog {
	t.Helper()
	c, err := Build([]byte(yml))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	return c
}

func requireBuildErr(t *testing.T, yml string, wantSubstrs ...string) error {
	t.Helper()
	_, err := Build([]byte(yml))
	if err == nil {
		t.Fatalf("expected error but got none")
	}
	for _, sub := range wantSubstrs {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("error %q does not contain %q", err.Error(), sub)
		}
	}
	return err
}

func requireParseErr(t *testing.T, yml string, wantSubstrs ...string) {
	t.Helper()
	_, err := Parse([]byte(yml))
	if err == nil {
		t.Fatalf("expected parse error but got none")
	}
	for _, sub := range wantSubstrs {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("parse error %q does not contain %q", err.Error(), sub)
		}
	}
}

func requireReport(t *testing.T, c *catalog.Catalog, want string) {
	t.Helper()
	if got := catalog.Report(c); got != want {
		t.Errorf("report mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

// ---------------------------------------------------------------------------
// Mapping form
// ---------------------------------------------------------------------------

func TestMappingForm(t *testing.T) {
	c := requireBuildOK(t, `
objects:
  - name: torch
    kind: item
    shape: 150
    frame: 0
    end_frame: 1
    offset: [0, -4]
    views:
      - facing: east
        shape: 150
        frame: 2
      - facing: north
        parts:
          - extent: [1, 0, 0]
            shape: 151
            frame: 3
            offset: [2, 2]
`)
	requireReport(t, c, `torch
  north 1 0
    frames 151:3
    offset 2 2
  east
    frames 150:2
  south
    frames 150:0 150:1
    offset 0 -4
`)
}

func TestMappingFormCharacter(t *testing.T) {
	c := requireBuildOK(t, `
kinds:
  golem: character
objects:
  - name: guard
    kind: golem
    shape: 7
`)
	rec, err := c.Lookup("guard")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Type != catalog.Character {
		t.Errorf("type = %s, want character", rec.Type)
	}
	if n := rec.FrameCount(); n != catalog.FramesPerShape {
		t.Errorf("frames = %d, want %d", n, catalog.FramesPerShape)
	}
}

func TestMappingFormDefaultsToProp(t *testing.T) {
	c := requireBuildOK(t, `
objects:
  - name: crate
    shape: 3
`)
	rec, _ := c.Lookup("crate")
	if rec == nil || rec.Type != catalog.Prop {
		t.Fatalf("expected prop record, got %+v", rec)
	}
}

func TestObjectLevelParts(t *testing.T) {
	c := requireBuildOK(t, `
objects:
  - name: wall
    parts:
      - extent: [0, 0, 2]
        shape: 9
        frame: 4
`)
	requireReport(t, c, "wall\n  south 0 0 2\n    frames 9:4\n")
}

// ---------------------------------------------------------------------------
// Shorthand form
// ---------------------------------------------------------------------------

func TestShorthandForm(t *testing.T) {
	c := requireBuildOK(t, `
- begin: {name: bridge, type: prop}
- facing: north
- range: [41, 0, 1]
- facing: east
- extent: [1, 0, 0]
- frame: [40, 0]
- extent: [0, 1, 2]
- frame: [40, 1]
- offset: [3, -1]
- end:
`)
	requireReport(t, c, `bridge
  north
    frames 41:0 41:1
  east 0 1 2
    frames 40:1
    offset 3 -1
  east 1 0
    frames 40:0
`)
}

func TestShorthandKindResolution(t *testing.T) {
	c := requireBuildOK(t, `
- begin: {name: villager, kind: human}
- shape: 12
`)
	rec, _ := c.Lookup("villager")
	if rec == nil || rec.Type != catalog.Character {
		t.Fatalf("expected character record, got %+v", rec)
	}
}

// ---------------------------------------------------------------------------
// Schema and conversion errors
// ---------------------------------------------------------------------------

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		yml  string
		want []string
	}{
		{"empty", "", []string{"phase=parse", "empty YAML"}},
		{"scalar root", "hello", []string{"phase=schema"}},
		{"unknown object key", "objects:\n  - name: a\n    colour: red\n", []string{"phase=schema"}},
		{"bad facing", "objects:\n  - name: a\n    views:\n      - facing: up\n", []string{"phase=schema"}},
		{"frame without shape", "objects:\n  - name: a\n    frame: 1\n", []string{"phase=schema"}},
		{"short offset", "objects:\n  - name: a\n    offset: [1]\n", []string{"phase=schema"}},
		{"bad kind type", "kinds:\n  golem: monster\n", []string{"phase=schema"}},
		{"two-key step", "- facing: east\n  shape: 3\n", []string{"phase=schema"}},
		{"unknown step", "- jump: 3\n", []string{"phase=schema"}},
		{"invalid yaml", "objects: [", []string{"phase=parse"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireParseErr(t, tc.yml, tc.want...)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		requireBuildErr(t, "objects:\n  - name: car\n    kind: vehicle\n", "phase=lower", "path=car", `unknown kind "vehicle"`)
	})

	t.Run("duplicate object", func(t *testing.T) {
		err := requireBuildErr(t, "objects:\n  - name: a\n    shape: 1\n  - name: a\n    shape: 2\n")
		if !errors.Is(err, catalog.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("out of range frame", func(t *testing.T) {
		err := requireBuildErr(t, "objects:\n  - name: a\n    shape: 1\n    frame: 40\n", "object=a")
		if !errors.Is(err, catalog.ErrOutOfRangeFrame) {
			t.Errorf("expected ErrOutOfRangeFrame, got %v", err)
		}
	})

	t.Run("character extent", func(t *testing.T) {
		err := requireBuildErr(t, "objects:\n  - name: g\n    kind: human\n    parts:\n      - extent: [1, 0, 0]\n        shape: 1\n")
		if !errors.Is(err, catalog.ErrInvalidExtentForCharacter) {
			t.Errorf("expected ErrInvalidExtentForCharacter, got %v", err)
		}
	})

	t.Run("kind conflicts with builtin", func(t *testing.T) {
		err := requireBuildErr(t, "kinds:\n  tree: character\n")
		if !errors.Is(err, catalog.ErrKindConflict) {
			t.Errorf("expected ErrKindConflict, got %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// Multiple documents
// ---------------------------------------------------------------------------

func TestBuildManySharesKindsAndNames(t *testing.T) {
	kindsDoc := []byte("kinds:\n  golem: character\n")
	objDoc := []byte("- begin: {name: stone, kind: golem}\n- shape: 2\n")

	c, err := BuildMany(objDoc, kindsDoc)
	if err != nil {
		t.Fatalf("BuildMany: %v", err)
	}
	if rec, _ := c.Lookup("stone"); rec == nil || rec.Type != catalog.Character {
		t.Fatalf("expected character stone, got %+v", rec)
	}

	_, err = BuildMany(objDoc, objDoc, kindsDoc)
	if !errors.Is(err, catalog.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName across documents, got %v", err)
	}
}

func TestEmptyDocumentsBuildEmptyCatalog(t *testing.T) {
	c := requireBuildOK(t, "objects: []\n")
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestLowerMatchesCatalogInstructions(t *testing.T) {
	doc, err := Parse([]byte(`
objects:
  - name: lamp
    shape: 5
    frame: 1
    views:
      - facing: west
        shape: 6
        frame: 0
        end_frame: 2
`))
	if err != nil {
		t.Fatal(err)
	}
	instrs, err := Lower(catalog.NewKinds(), doc)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`BeginObject("lamp", prop)`,
		"AddFrame(5, 1)",
		"SetFacing(west)",
		"AddFrameRange(6, 0, 2)",
	}
	if len(instrs) != len(want) {
		t.Fatalf("got %d instructions %v, want %d", len(instrs), instrs, len(want))
	}
	for i, in := range instrs {
		if in.String() != want[i] {
			t.Errorf("instr %d = %s, want %s", i, in, want[i])
		}
	}
}
