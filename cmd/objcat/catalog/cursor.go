package catalog

import (
	"fmt"
	"strings"
)

// Cursor is the state machine driven by an instruction stream.
//
// It is Idle until the first BeginObject, then Building while an object is
// pending. EndStream flushes the pending object and ends the stream; the
// catalog is only handed out after that. The first failing instruction
// poisons the cursor: every later Apply returns the same error, since a
// catalog is only ever produced from a fully valid stream.
//
// A Cursor is not safe for concurrent use. Independent cursors share nothing.
type Cursor struct {
	catalog *Catalog

	name    string
	pending *ObjectRecord
	facing  Face
	extent  Extent

	applied int
	ended   bool
	err     error
}

// NewCursor returns an idle cursor over an empty catalog.
func NewCursor() *Cursor {
	return &Cursor{
		catalog: newCatalog(),
		facing:  South,
	}
}

// Apply executes one instruction. A non-nil error is an *InstructionError.
func (c *Cursor) Apply(in Instruction) error {
	if c.err != nil {
		return c.err
	}
	object := c.name
	if b, ok := in.(BeginObject); ok {
		object = b.Name
	}
	if err := c.apply(in); err != nil {
		c.err = &InstructionError{Index: c.applied, Instruction: in, Object: object, Err: err}
		return c.err
	}
	c.applied++
	return nil
}

func (c *Cursor) apply(in Instruction) error {
	if c.ended {
		if _, ok := in.(EndStream); ok {
			return nil
		}
		return ErrStreamEnded
	}

	switch in := in.(type) {
	case BeginObject:
		return c.begin(in.Name, in.Type)
	case EndStream:
		if err := c.flush(); err != nil {
			return err
		}
		c.ended = true
		return nil
	}

	if c.pending == nil {
		return ErrNoObject
	}

	switch in := in.(type) {
	case SetFacing:
		if !in.Face.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidFace, int(in.Face))
		}
		c.facing = in.Face
		c.extent = Extent{}
	case SetExtent:
		if c.pending.Type == Character {
			return ErrInvalidExtentForCharacter
		}
		c.extent = in.Extent
	case AddFullShape:
		return c.addFullShape(in.Shape)
	case AddFrame:
		return c.addRange(in.Shape, in.Frame, in.Frame)
	case AddFrameRange:
		return c.addRange(in.Shape, in.Start, in.End)
	case SetViewOffset:
		v := c.pending.view(c.key())
		v.OffsetX = in.X
		v.OffsetY = in.Y
	default:
		return fmt.Errorf("unsupported instruction %T", in)
	}
	return nil
}

func (c *Cursor) begin(name string, t ObjectType) error {
	if name == "" {
		return ErrEmptyName
	}
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidType, int(t))
	}
	if err := c.flush(); err != nil {
		return err
	}
	if _, exists := c.catalog.objects[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	c.name = name
	c.pending = newObjectRecord(t)
	c.facing = South
	c.extent = Extent{}
	return nil
}

// validName reports whether name survives the text report, where a name is
// one unindented line with trailing blanks trimmed.
func validName(name string) bool {
	return strings.TrimSpace(name) == name && !strings.ContainsAny(name, "\r\n")
}

// flush commits the pending object, if any, and returns the cursor to Idle.
func (c *Cursor) flush() error {
	if c.pending == nil {
		return nil
	}
	if err := c.catalog.insert(c.name, c.pending); err != nil {
		return err
	}
	c.name = ""
	c.pending = nil
	return nil
}

func (c *Cursor) key() ViewKey {
	return ViewKey{Face: c.facing, Extent: c.extent}
}

func (c *Cursor) addFullShape(shape int) error {
	if err := CheckShape(shape); err != nil {
		return err
	}
	if c.pending.Type != Character {
		return c.addRange(shape, 0, FramesPerShape-1)
	}

	// Character sheets hold 16 north frames followed by 16 south frames.
	if c.facing != South || !c.extent.IsZero() {
		return fmt.Errorf("%w (facing %s, extent %s)", ErrInvalidCharacterView, c.facing, c.extent)
	}
	half := FramesPerShape / 2
	north := c.pending.view(ViewKey{Face: North})
	south := c.pending.view(ViewKey{Face: South})
	for f := 0; f < half; f++ {
		north.Frames = append(north.Frames, Encode(shape, f))
	}
	for f := half; f < FramesPerShape; f++ {
		south.Frames = append(south.Frames, Encode(shape, f))
	}
	return nil
}

// addRange appends frames start..end of shape to the current view. An empty
// range (start > end) appends nothing and leaves the view untouched.
func (c *Cursor) addRange(shape, start, end int) error {
	if err := CheckShape(shape); err != nil {
		return err
	}
	for _, f := range []int{start, end} {
		if !ValidFrame(f) {
			return fmt.Errorf("%w: %d", ErrOutOfRangeFrame, f)
		}
	}
	if start > end {
		return nil
	}
	v := c.pending.view(c.key())
	for f := start; f <= end; f++ {
		v.Frames = append(v.Frames, Encode(shape, f))
	}
	return nil
}

// Building reports whether an object is pending.
func (c *Cursor) Building() bool { return c.pending != nil }

// Ended reports whether EndStream has been applied.
func (c *Cursor) Ended() bool { return c.ended }

// Err returns the error that poisoned the cursor, if any.
func (c *Cursor) Err() error { return c.err }

// Applied is the number of instructions applied successfully.
func (c *Cursor) Applied() int { return c.applied }

// Position returns the pending object name and the current facing and extent.
func (c *Cursor) Position() (name string, facing Face, extent Extent) {
	return c.name, c.facing, c.extent
}

// Catalog returns the finished catalog. It fails with ErrStreamOpen until
// EndStream has been applied, and with the build error if one occurred.
func (c *Cursor) Catalog() (*Catalog, error) {
	if c.err != nil {
		return nil, c.err
	}
	if !c.ended {
		return nil, ErrStreamOpen
	}
	return c.catalog, nil
}

// Preview returns a copy of the catalog as it would be if the stream ended
// now, including the pending object. The cursor is not modified.
func (c *Cursor) Preview() (*Catalog, error) {
	p := c.catalog.clone()
	if c.pending != nil {
		if err := p.insert(c.name, c.pending.clone()); err != nil {
			return nil, err
		}
	}
	return p, nil
}
