package objscript

import (
	"errors"
	"strings"
	"testing"

	"objcat/cmd/objcat/catalog"
)

func requireBuildOK(t *testing.T, src string) *catalog.Catalog {
	t.Helper()
	c, err := Build("test.inc", strings.NewReader(src))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	return c
}

func requireBuildErr(t *testing.T, src string, wantSubstrs ...string) error {
	t.Helper()
	_, err := Build("test.inc", strings.NewReader(src))
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

func TestScript(t *testing.T) {
	c := requireBuildOK(t, `
// the bridge from the sample catalog
prop("bridge");
north(41, 0, 1);
east(40, 0)            /* semicolons are optional */
extend(1, 0, 0, 40, 0)
extend(0, 1, 2, 40, 1);
offset(3, -1);
alt(99, 1);

item("alpha")
west(7, 5, 4)          // start > end adds nothing
offset(1, 2)
`)
	want := `alpha
  west
    frames
    offset 1 2
bridge
  north
    frames 41:0 41:1
  east
    frames 40:0
  east 0 1 2
    frames 40:1
    offset 3 -1
  east 1 0
    frames 40:0
`
	if got := catalog.Report(c); got != want {
		t.Errorf("report mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestStarterArity(t *testing.T) {
	cases := []struct {
		src   string
		views int
		want  string
	}{
		{`tree("oak")`, 0, ""},
		{`tree("oak", 310)`, 1, "310:0"},
		{`tree("oak", 310, 4)`, 1, "310:4"},
		{`tree("oak", 310, 4, 6)`, 1, "310:4 310:5 310:6"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			c := requireBuildOK(t, tc.src)
			rec, err := c.Lookup("oak")
			if err != nil {
				t.Fatal(err)
			}
			if len(rec.Views) != tc.views {
				t.Fatalf("views = %d, want %d", len(rec.Views), tc.views)
			}
			if tc.views == 0 {
				return
			}
			v, ok := rec.View(catalog.ViewKey{Face: catalog.South})
			if !ok {
				t.Fatal("missing south view")
			}
			if !strings.HasPrefix(frameList(v), tc.want) {
				t.Errorf("frames = %q, want prefix %q", frameList(v), tc.want)
			}
		})
	}
}

func frameList(v *catalog.View) string {
	parts := make([]string, len(v.Frames))
	for i, f := range v.Frames {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

func TestCharacterStarter(t *testing.T) {
	c := requireBuildOK(t, `human("guard", 400)`)
	rec, _ := c.Lookup("guard")
	if rec == nil || rec.Type != catalog.Character {
		t.Fatalf("expected character, got %+v", rec)
	}
	if len(rec.Views) != 2 {
		t.Errorf("views = %d, want 2", len(rec.Views))
	}
}

func TestCustomKinds(t *testing.T) {
	k := catalog.NewKinds()
	if err := k.Register("golem", catalog.Character); err != nil {
		t.Fatal(err)
	}
	prog, err := Compile("k.inc", strings.NewReader(`golem("g", 1)`), k)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Instructions) != 2 {
		t.Fatalf("instructions = %v", prog.Instructions)
	}
	if b, ok := prog.Instructions[0].(catalog.BeginObject); !ok || b.Type != catalog.Character {
		t.Errorf("first instruction = %v", prog.Instructions[0])
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"missing paren", "prop \"a\"", []string{"test.inc:1:6", "expected ("}},
		{"unclosed call", "prop(\"a\", 1", []string{"expected , or )"}},
		{"string not first", "prop(1, \"a\")", []string{"string argument must come first"}},
		{"stray token", "\n  42", []string{"test.inc:2:3", "expected call"}},
		{"dangling minus", "offset(-, 2)", []string{"expected integer after -"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := requireBuildErr(t, tc.src, tc.want...)
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("expected ErrSyntax, got %v", err)
			}
		})
	}
}

func TestLowerErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"unknown call", `vehicle("car", 1)`, ErrUnknown},
		{"starter without name", `prop(1)`, ErrArgument},
		{"facing with name", `east("x", 1)`, ErrArgument},
		{"facing arity", `east(1, 2, 3, 4)`, ErrArity},
		{"extend arity", `extend(1, 0, 0)`, ErrArity},
		{"offset arity", `offset(1)`, ErrArity},
		{"alt arity", `alt()`, ErrArity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := requireBuildErr(t, tc.src, "test.inc:1:1")
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestInstructionErrorsCarryPosition(t *testing.T) {
	err := requireBuildErr(t, "prop(\"a\")\n\nhuman(\"b\")\n  extend(1, 0, 0, 5)\n",
		"test.inc:4:3", "object=b")
	if !errors.Is(err, catalog.ErrInvalidExtentForCharacter) {
		t.Errorf("expected ErrInvalidExtentForCharacter, got %v", err)
	}
	var ie *catalog.InstructionError
	if !errors.As(err, &ie) || ie.Index != 2 {
		t.Errorf("expected InstructionError at index 2, got %v", err)
	}
}

func TestHugeShapeRejected(t *testing.T) {
	err := requireBuildErr(t, "tree(\"big\")\neast(0x7fffffffffffffff, 1);\n",
		"test.inc:2:1", "object=big")
	if !errors.Is(err, catalog.ErrShapeOutOfRange) {
		t.Errorf("expected ErrShapeOutOfRange, got %v", err)
	}
}

func TestCallString(t *testing.T) {
	calls, err := Parse("s.inc", strings.NewReader(`tree("oak", -1, 0x10)`))
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 {
		t.Fatalf("calls = %v", calls)
	}
	if got := calls[0].String(); got != `tree("oak", -1, 16)` {
		t.Errorf("String() = %s", got)
	}
}
