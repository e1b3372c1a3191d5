// Package objscript reads object scripts written in call notation:
//
//	tree("oak", 310);
//	east(310, 4);
//	extend(1, 0, 0, 311, 0, 3);
//	offset(0, -2);
//
// A call named after a kind starts an object; the facing names, extend,
// offset and alt add to it. Comments use // and /* */; semicolons are
// optional.
package objscript

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"objcat/cmd/objcat/catalog"
)

var (
	ErrSyntax   = errors.New("syntax error")
	ErrArity    = errors.New("wrong number of arguments")
	ErrArgument = errors.New("bad argument")
	ErrUnknown  = errors.New("unknown call")
)

// Call is one parsed statement.
type Call struct {
	Pos  scanner.Position
	Name string
	// Label is the quoted string argument of an object-starting call.
	Label    string
	HasLabel bool
	Args     []int
}

func (c Call) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	if c.HasLabel {
		parts = append(parts, strconv.Quote(c.Label))
	}
	for _, a := range c.Args {
		parts = append(parts, strconv.Itoa(a))
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Program is a lowered script. Positions[i] is the source position of the
// call that produced Instructions[i].
type Program struct {
	Instructions []catalog.Instruction
	Positions    []scanner.Position
}

// Locate returns the source position of instruction i.
func (p *Program) Locate(i int) (scanner.Position, bool) {
	if i < 0 || i >= len(p.Positions) {
		return scanner.Position{}, false
	}
	return p.Positions[i], true
}

// Parse reads all calls from src. filename is used in positions only.
func Parse(filename string, src io.Reader) ([]Call, error) {
	var s scanner.Scanner
	s.Init(src)
	s.Filename = filename
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings |
		scanner.ScanComments | scanner.SkipComments

	var scanErr error
	s.Error = func(s *scanner.Scanner, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("%s: %w: %s", s.Position, ErrSyntax, msg)
		}
	}

	p := &parser{s: &s}
	var calls []Call
	for {
		tok := p.next()
		if scanErr != nil {
			return nil, scanErr
		}
		if tok == scanner.EOF {
			return calls, nil
		}
		if tok == ';' {
			continue
		}
		call, err := p.call(tok)
		if scanErr != nil {
			return nil, scanErr
		}
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
}

type parser struct {
	s *scanner.Scanner
}

func (p *parser) next() rune { return p.s.Scan() }

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", p.s.Position, ErrSyntax, fmt.Sprintf(format, args...))
}

// call parses `ident ( [arg {, arg}] )` with tok already read.
func (p *parser) call(tok rune) (Call, error) {
	if tok != scanner.Ident {
		return Call{}, p.errorf("expected call, got %s", scanner.TokenString(tok))
	}
	c := Call{Pos: p.s.Position, Name: p.s.TokenText()}
	if tok = p.next(); tok != '(' {
		return Call{}, p.errorf("expected ( after %s, got %s", c.Name, scanner.TokenString(tok))
	}

	tok = p.next()
	if tok == ')' {
		return c, nil
	}
	for {
		switch tok {
		case scanner.String:
			if c.HasLabel || len(c.Args) > 0 {
				return Call{}, p.errorf("string argument must come first in %s", c.Name)
			}
			label, err := strconv.Unquote(p.s.TokenText())
			if err != nil {
				return Call{}, p.errorf("bad string %s", p.s.TokenText())
			}
			c.Label, c.HasLabel = label, true
		case '-', scanner.Int:
			n, err := p.integer(tok)
			if err != nil {
				return Call{}, err
			}
			c.Args = append(c.Args, n)
		default:
			return Call{}, p.errorf("unexpected %s in arguments of %s", scanner.TokenString(tok), c.Name)
		}

		switch tok = p.next(); tok {
		case ')':
			return c, nil
		case ',':
			tok = p.next()
		default:
			return Call{}, p.errorf("expected , or ) in %s, got %s", c.Name, scanner.TokenString(tok))
		}
	}
}

func (p *parser) integer(tok rune) (int, error) {
	sign := ""
	if tok == '-' {
		sign = "-"
		if tok = p.next(); tok != scanner.Int {
			return 0, p.errorf("expected integer after -, got %s", scanner.TokenString(tok))
		}
	}
	n, err := strconv.ParseInt(sign+p.s.TokenText(), 0, 0)
	if err != nil {
		return 0, p.errorf("bad integer %s%s", sign, p.s.TokenText())
	}
	return int(n), nil
}

// Lower turns calls into instructions. An object-starting call is any call
// named after a kind registered in k.
func Lower(calls []Call, k *catalog.Kinds) (*Program, error) {
	prog := &Program{}
	for _, c := range calls {
		instrs, err := lowerCall(c, k)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", c.Pos, c, err)
		}
		for _, in := range instrs {
			prog.Instructions = append(prog.Instructions, in)
			prog.Positions = append(prog.Positions, c.Pos)
		}
	}
	return prog, nil
}

// Compile parses and lowers src.
func Compile(filename string, src io.Reader, k *catalog.Kinds) (*Program, error) {
	calls, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return Lower(calls, k)
}

// Build compiles a single script and builds its catalog with the built-in
// kinds.
func Build(filename string, src io.Reader) (*catalog.Catalog, error) {
	prog, err := Compile(filename, src, catalog.NewKinds())
	if err != nil {
		return nil, err
	}
	c, err := catalog.Build(prog.Instructions)
	if err != nil {
		return nil, prog.Annotate(err)
	}
	return c, nil
}

// Annotate prefixes an *catalog.InstructionError with the position of the
// call that produced the failing instruction.
func (p *Program) Annotate(err error) error {
	var ie *catalog.InstructionError
	if !errors.As(err, &ie) {
		return err
	}
	pos, ok := p.Locate(ie.Index)
	if !ok {
		return err
	}
	return fmt.Errorf("%s: %w", pos, err)
}

func lowerCall(c Call, k *catalog.Kinds) ([]catalog.Instruction, error) {
	if face, err := catalog.ParseFace(c.Name); err == nil {
		if err := noLabel(c); err != nil {
			return nil, err
		}
		add, err := addFor(c.Args)
		if err != nil {
			return nil, err
		}
		return []catalog.Instruction{catalog.SetFacing{Face: face}, add}, nil
	}

	switch c.Name {
	case "extend":
		if err := noLabel(c); err != nil {
			return nil, err
		}
		if len(c.Args) < 4 {
			return nil, fmt.Errorf("%w: extend takes x, y, z, shape[, frame[, end]]", ErrArity)
		}
		add, err := addFor(c.Args[3:])
		if err != nil {
			return nil, err
		}
		ext := catalog.Extent{X: c.Args[0], Y: c.Args[1], Z: c.Args[2]}
		return []catalog.Instruction{catalog.SetExtent{Extent: ext}, add}, nil

	case "offset":
		if err := noLabel(c); err != nil {
			return nil, err
		}
		if len(c.Args) != 2 {
			return nil, fmt.Errorf("%w: offset takes x, y", ErrArity)
		}
		return []catalog.Instruction{catalog.SetViewOffset{X: c.Args[0], Y: c.Args[1]}}, nil

	case "alt":
		if err := noLabel(c); err != nil {
			return nil, err
		}
		if _, err := addFor(c.Args); err != nil {
			return nil, err
		}
		return nil, nil
	}

	t, ok := k.Lookup(c.Name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, c.Name)
	}
	if !c.HasLabel {
		return nil, fmt.Errorf("%w: %s needs a quoted object name first", ErrArgument, c.Name)
	}
	out := []catalog.Instruction{catalog.BeginObject{Name: c.Label, Type: t}}
	if len(c.Args) == 0 {
		return out, nil
	}
	add, err := addFor(c.Args)
	if err != nil {
		return nil, err
	}
	return append(out, add), nil
}

func noLabel(c Call) error {
	if c.HasLabel {
		return fmt.Errorf("%w: %s takes no string argument", ErrArgument, c.Name)
	}
	return nil
}

// addFor maps shape[, frame[, end]] to the matching add instruction.
func addFor(args []int) (catalog.Instruction, error) {
	switch len(args) {
	case 1:
		return catalog.AddFullShape{Shape: args[0]}, nil
	case 2:
		return catalog.AddFrame{Shape: args[0], Frame: args[1]}, nil
	case 3:
		return catalog.AddFrameRange{Shape: args[0], Start: args[1], End: args[2]}, nil
	default:
		return nil, fmt.Errorf("%w: expected shape[, frame[, end]], got %d values", ErrArity, len(args))
	}
}
