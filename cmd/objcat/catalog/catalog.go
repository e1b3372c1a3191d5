package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"iter"
	"slices"
)

// Catalog maps object names to their finished records. It is produced by a
// Cursor once the stream has ended and is read-only from then on.
type Catalog struct {
	objects map[string]*ObjectRecord
}

func newCatalog() *Catalog {
	return &Catalog{objects: make(map[string]*ObjectRecord)}
}

// insert commits a record. Names are never overwritten.
func (c *Catalog) insert(name string, rec *ObjectRecord) error {
	if _, exists := c.objects[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	c.objects[name] = rec
	return nil
}

// Lookup returns the record for name.
func (c *Catalog) Lookup(name string) (*ObjectRecord, error) {
	rec, ok := c.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return rec, nil
}

// Len is the number of objects in the catalog.
func (c *Catalog) Len() int { return len(c.objects) }

// Names returns all object names in ascending order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.objects))
	for name := range c.objects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All iterates over the objects in ascending name order.
func (c *Catalog) All() iter.Seq2[string, *ObjectRecord] {
	return func(yield func(string, *ObjectRecord) bool) {
		for _, name := range c.Names() {
			if !yield(name, c.objects[name]) {
				return
			}
		}
	}
}

// Stats summarises a catalog.
type Stats struct {
	Objects       int `json:"objects"`
	Characters    int `json:"characters"`
	Views         int `json:"views"`
	ExtendedViews int `json:"extended_views"`
	Frames        int `json:"frames"`
}

func (c *Catalog) Stats() Stats {
	var s Stats
	for _, rec := range c.objects {
		s.Objects++
		if rec.Type == Character {
			s.Characters++
		}
		for k, v := range rec.Views {
			s.Views++
			if k.Extended() {
				s.ExtendedViews++
			}
			s.Frames += len(v.Frames)
		}
	}
	return s
}

// Digest is the hex sha256 of the catalog's report, so two catalogs with the
// same digest print identically.
func (c *Catalog) Digest() string {
	sum := sha256.Sum256([]byte(Report(c)))
	return hex.EncodeToString(sum[:])
}

// Instructions lowers the catalog back into a canonical instruction stream:
// one BeginObject per object in name order, then per view a facing/extent
// selection, its frames and its offset, and a final EndStream. Building the
// stream yields a catalog with an identical report.
func (c *Catalog) Instructions() []Instruction {
	var out []Instruction
	for name, rec := range c.All() {
		out = append(out, BeginObject{Name: name, Type: rec.Type})
		for _, key := range rec.Keys() {
			out = append(out, SetFacing{Face: key.Face})
			if !key.Extent.IsZero() {
				out = append(out, SetExtent{Extent: key.Extent})
			}
			v := rec.Views[key]
			for _, a := range v.Frames {
				out = append(out, AddFrame{Shape: a.Shape(), Frame: a.Frame()})
			}
			// A view with neither frames nor offset only exists through an
			// explicit zero offset.
			if v.HasOffset() || len(v.Frames) == 0 {
				out = append(out, SetViewOffset{X: v.OffsetX, Y: v.OffsetY})
			}
		}
	}
	return append(out, EndStream{})
}

func (c *Catalog) clone() *Catalog {
	out := newCatalog()
	for name, rec := range c.objects {
		out.objects[name] = rec.clone()
	}
	return out
}

func (r *ObjectRecord) clone() *ObjectRecord {
	out := newObjectRecord(r.Type)
	for k, v := range r.Views {
		out.Views[k] = &View{
			Frames:  slices.Clone(v.Frames),
			OffsetX: v.OffsetX,
			OffsetY: v.OffsetY,
		}
	}
	return out
}
