package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteReport prints the catalog in its persisted text form:
//
//	<name>
//	  <face> [x y [z]]
//	    frames s:f s:f ...
//	    offset x y
//
// Objects are ordered by name and views by face, then extent. The offset
// line is only written for non-zero offsets.
func WriteReport(w io.Writer, c *Catalog) error {
	bw := bufio.NewWriter(w)
	for name, rec := range c.All() {
		fmt.Fprintf(bw, "%s\n", name)
		for _, key := range rec.Keys() {
			v := rec.Views[key]
			fmt.Fprintf(bw, "  %s\n", key.Label())
			bw.WriteString("    frames")
			for _, a := range v.Frames {
				fmt.Fprintf(bw, " %s", a)
			}
			bw.WriteByte('\n')
			if v.HasOffset() {
				fmt.Fprintf(bw, "    offset %d %d\n", v.OffsetX, v.OffsetY)
			}
		}
	}
	return bw.Flush()
}

// Report returns the text form written by WriteReport.
func Report(c *Catalog) string {
	var b strings.Builder
	_ = WriteReport(&b, c)
	return b.String()
}

// WriteObjectReport prints a single object in the same form as WriteReport.
func WriteObjectReport(w io.Writer, name string, rec *ObjectRecord) error {
	c := newCatalog()
	c.objects[name] = rec
	return WriteReport(w, c)
}

// ParseReport reads the text form back into a catalog. The text form does not
// carry object types, so every object is read back as a Prop. The parsed
// stream goes through a Cursor, so the usual build errors apply.
func ParseReport(r io.Reader) (*Catalog, error) {
	var (
		instrs    []Instruction
		object    string
		seen      map[ViewKey]bool
		inView    bool
		hasFrames bool
	)

	endView := func(line int) error {
		if inView && !hasFrames {
			return fmt.Errorf("phase=parse line=%d object=%s: view is missing its frames line", line, object)
		}
		inView, hasFrames = false, false
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		fail := func(format string, args ...any) error {
			return fmt.Errorf("phase=parse line=%d object=%s: %s", lineNo, object, fmt.Sprintf(format, args...))
		}

		switch {
		case strings.HasPrefix(line, "    "):
			if !inView {
				return nil, fail("%q outside of a view", strings.TrimSpace(line))
			}
			fields := strings.Fields(line)
			switch fields[0] {
			case "frames":
				if hasFrames {
					return nil, fail("duplicate frames line")
				}
				hasFrames = true
				for _, lit := range fields[1:] {
					a, err := ParseFrameAddress(lit)
					if err != nil {
						return nil, fail("%v", err)
					}
					instrs = append(instrs, AddFrame{Shape: a.Shape(), Frame: a.Frame()})
				}
				if len(fields) == 1 {
					instrs = append(instrs, SetViewOffset{})
				}
			case "offset":
				if !hasFrames {
					return nil, fail("offset before frames")
				}
				xy, err := atois(fields[1:])
				if err != nil || len(xy) != 2 {
					return nil, fail("offset wants two integers, got %q", strings.Join(fields[1:], " "))
				}
				instrs = append(instrs, SetViewOffset{X: xy[0], Y: xy[1]})
			default:
				return nil, fail("unknown view field %q", fields[0])
			}

		case strings.HasPrefix(line, "  "):
			if object == "" {
				return nil, fail("view %q before any object", strings.TrimSpace(line))
			}
			if err := endView(lineNo); err != nil {
				return nil, err
			}
			key, err := parseViewLabel(strings.TrimSpace(line))
			if err != nil {
				return nil, fail("%v", err)
			}
			if seen[key] {
				return nil, fail("duplicate view %s", key.Label())
			}
			seen[key] = true
			inView = true
			instrs = append(instrs, SetFacing{Face: key.Face})
			if !key.Extent.IsZero() {
				instrs = append(instrs, SetExtent{Extent: key.Extent})
			}

		case strings.HasPrefix(line, " "):
			return nil, fail("unexpected indentation in %q", line)

		default:
			if err := endView(lineNo); err != nil {
				return nil, err
			}
			object = line
			seen = make(map[ViewKey]bool)
			instrs = append(instrs, BeginObject{Name: object, Type: Prop})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := endView(lineNo); err != nil {
		return nil, err
	}
	return Build(instrs)
}

// parseViewLabel is the inverse of ViewKey.Label.
func parseViewLabel(s string) (ViewKey, error) {
	fields := strings.Fields(s)
	face, err := ParseFace(fields[0])
	if err != nil {
		return ViewKey{}, err
	}
	key := ViewKey{Face: face}
	ext, err := atois(fields[1:])
	if err != nil {
		return ViewKey{}, fmt.Errorf("view %q: %w", s, err)
	}
	switch len(ext) {
	case 0:
	case 2:
		key.Extent = Extent{X: ext[0], Y: ext[1]}
	case 3:
		key.Extent = Extent{X: ext[0], Y: ext[1], Z: ext[2]}
	default:
		return ViewKey{}, fmt.Errorf("view %q: expected face, face x y or face x y z", s)
	}
	return key, nil
}

func atois(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
