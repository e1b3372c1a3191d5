package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ObjectType selects how AddFullShape distributes a shape's frames.
type ObjectType int

const (
	Prop ObjectType = iota
	Character
	maxObjectType
)

func (t ObjectType) String() string {
	switch t {
	case Prop:
		return "prop"
	case Character:
		return "character"
	default:
		return fmt.Sprintf("ObjectType(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared object types.
func (t ObjectType) Valid() bool { return t >= Prop && t < maxObjectType }

// ParseObjectType accepts the lower-case names produced by String.
func ParseObjectType(s string) (ObjectType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prop":
		return Prop, nil
	case "character":
		return Character, nil
	default:
		return 0, fmt.Errorf("unknown object type %q (expected prop or character)", s)
	}
}

// Face is a cardinal view direction. The ordinal order is the report order.
type Face int

const (
	North Face = iota
	East
	South
	West
	maxFace
)

var faceNames = [...]string{"north", "east", "south", "west"}

func (f Face) String() string {
	if f.Valid() {
		return faceNames[f]
	}
	return fmt.Sprintf("Face(%d)", int(f))
}

func (f Face) Valid() bool { return f >= North && f < maxFace }

// Faces returns all faces in ordinal order.
func Faces() []Face { return []Face{North, East, South, West} }

// ParseFace accepts the lower-case names produced by String.
func ParseFace(s string) (Face, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range faceNames {
		if n == name {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("unknown facing %q (expected north, east, south or west)", s)
}

// Extent offsets one part of a multi-part object. The zero value is a
// simple, single-part view.
type Extent struct {
	X, Y, Z int
}

func (e Extent) IsZero() bool { return e == Extent{} }

// Compare orders extents lexicographically by X, Y, Z.
func (e Extent) Compare(o Extent) int {
	if c := cmp.Compare(e.X, o.X); c != 0 {
		return c
	}
	if c := cmp.Compare(e.Y, o.Y); c != 0 {
		return c
	}
	return cmp.Compare(e.Z, o.Z)
}

func (e Extent) String() string {
	return fmt.Sprintf("(%d,%d,%d)", e.X, e.Y, e.Z)
}

// ViewKey identifies one view within an object.
type ViewKey struct {
	Face   Face
	Extent Extent
}

// Compare orders keys by face ordinal, then extent.
func (k ViewKey) Compare(o ViewKey) int {
	if c := cmp.Compare(int(k.Face), int(o.Face)); c != 0 {
		return c
	}
	return k.Extent.Compare(o.Extent)
}

// Extended reports whether the key names a part of a multi-part object.
func (k ViewKey) Extended() bool { return !k.Extent.IsZero() }

// Label is the facing/extent label used in reports: the face name, followed
// by "x y" when the extent is planar and "x y z" when z is set.
func (k ViewKey) Label() string {
	e := k.Extent
	switch {
	case e.Z != 0:
		return fmt.Sprintf("%s %d %d %d", k.Face, e.X, e.Y, e.Z)
	case e.X != 0 || e.Y != 0:
		return fmt.Sprintf("%s %d %d", k.Face, e.X, e.Y)
	default:
		return k.Face.String()
	}
}

func (k ViewKey) String() string {
	return k.Face.String() + k.Extent.String()
}

// View is one facing of an object. Frame order is animation order.
type View struct {
	Frames  []FrameAddress
	OffsetX int
	OffsetY int
}

func (v *View) HasOffset() bool { return v.OffsetX != 0 || v.OffsetY != 0 }

// ObjectRecord is the per-object set of views.
type ObjectRecord struct {
	Type  ObjectType
	Views map[ViewKey]*View
}

func newObjectRecord(t ObjectType) *ObjectRecord {
	return &ObjectRecord{Type: t, Views: make(map[ViewKey]*View)}
}

// View returns the view stored under key.
func (r *ObjectRecord) View(key ViewKey) (*View, bool) {
	v, ok := r.Views[key]
	return v, ok
}

// Keys returns the view keys ordered by face, then extent.
func (r *ObjectRecord) Keys() []ViewKey {
	keys := make([]ViewKey, 0, len(r.Views))
	for k := range r.Views {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, ViewKey.Compare)
	return keys
}

// FrameCount is the number of frames over all views.
func (r *ObjectRecord) FrameCount() int {
	n := 0
	for _, v := range r.Views {
		n += len(v.Frames)
	}
	return n
}

// view returns the view for key, creating an empty one on first use.
func (r *ObjectRecord) view(key ViewKey) *View {
	v, ok := r.Views[key]
	if !ok {
		v = &View{}
		r.Views[key] = v
	}
	return v
}
