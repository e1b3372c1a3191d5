package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"objcat/cmd/objcat/catalog"
	"objcat/cmd/objcat/catstore"
	"objcat/cmd/objcat/objscript"
)

const replHelp = `statements use the script notation, e.g.
  tree("oak", 310)   east(310, 4)   extend(1, 0, 0, 311)   offset(0, -2)
commands:
  :report        print the catalog built so far, including the open object
  :end           end the stream and print the final catalog
  :save <path>   save the catalog built so far (.txt, .json, .zst)
  :kinds         list the kinds that start an object
  :reset         discard everything and start over
  :quit          leave
`

// replSession applies statements to a cursor one line at a time. A line
// either applies completely or not at all.
type replSession struct {
	kinds   *catalog.Kinds
	out     io.Writer
	cur     *catalog.Cursor
	history []catalog.Instruction
	lines   int
}

func newReplSession(k *catalog.Kinds, out io.Writer) *replSession {
	return &replSession{kinds: k, out: out, cur: catalog.NewCursor()}
}

// prompt names the object being built, if any.
func (s *replSession) prompt() string {
	if name, _, _ := s.cur.Position(); name != "" {
		return appName + "(" + name + ")> "
	}
	return appName + "> "
}

// exec runs one input line and reports whether the session should end.
func (s *replSession) exec(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if strings.HasPrefix(line, ":") {
		return s.command(line)
	}

	s.lines++
	prog, err := objscript.Compile(fmt.Sprintf("line %d", s.lines), strings.NewReader(line), s.kinds)
	if err != nil {
		return false, err
	}
	for _, in := range prog.Instructions {
		if err := s.cur.Apply(in); err != nil {
			s.replay()
			return false, err
		}
	}
	s.history = append(s.history, prog.Instructions...)
	return false, nil
}

// replay rebuilds the cursor from the accepted history, dropping a failed line.
func (s *replSession) replay() {
	s.cur = catalog.NewCursor()
	for _, in := range s.history {
		// history only holds instructions that applied before
		_ = s.cur.Apply(in)
	}
}

func (s *replSession) command(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true, nil

	case ":help", ":h":
		fmt.Fprint(s.out, replHelp)

	case ":report":
		c, err := s.cur.Preview()
		if err != nil {
			return false, err
		}
		return false, catalog.WriteReport(s.out, c)

	case ":end":
		if err := s.cur.Apply(catalog.EndStream{}); err != nil {
			return false, err
		}
		s.history = append(s.history, catalog.EndStream{})
		c, err := s.cur.Catalog()
		if err != nil {
			return false, err
		}
		if err := catalog.WriteReport(s.out, c); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Total objects: %d\n", c.Len())

	case ":save":
		if len(fields) != 2 {
			return false, errors.New("usage: :save <path>")
		}
		c, err := s.cur.Preview()
		if err != nil {
			return false, err
		}
		f, _ := catstore.FormatFor(fields[1])
		if err := catstore.Save(fields[1], c, f); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "saved %d objects to %s\n", c.Len(), fields[1])

	case ":kinds":
		for _, name := range s.kinds.Names() {
			t, _ := s.kinds.Lookup(name)
			fmt.Fprintf(s.out, "%-12s %s\n", name, t)
		}

	case ":reset":
		s.cur = catalog.NewCursor()
		s.history = nil
		s.lines = 0

	default:
		return false, fmt.Errorf("unknown command %s (try :help)", fields[0])
	}
	return false, nil
}
