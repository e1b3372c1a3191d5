package catstore

import (
	"fmt"

	"objcat/cmd/objcat/catalog"
)

type jsonCatalog struct {
	Objects []jsonObject `json:"objects"`
}

type jsonObject struct {
	Name  string     `json:"name"`
	Type  string     `json:"type"`
	Views []jsonView `json:"views"`
}

type jsonView struct {
	Face   string   `json:"face"`
	Extent [3]int   `json:"extent"`
	Frames []string `json:"frames"`
	Offset *[2]int  `json:"offset,omitempty"`
}

func toJSON(c *catalog.Catalog) jsonCatalog {
	doc := jsonCatalog{Objects: make([]jsonObject, 0, c.Len())}
	for name, rec := range c.All() {
		obj := jsonObject{Name: name, Type: rec.Type.String(), Views: []jsonView{}}
		for _, key := range rec.Keys() {
			v := rec.Views[key]
			jv := jsonView{
				Face:   key.Face.String(),
				Extent: [3]int{key.Extent.X, key.Extent.Y, key.Extent.Z},
				Frames: make([]string, len(v.Frames)),
			}
			for i, a := range v.Frames {
				jv.Frames[i] = a.String()
			}
			if v.HasOffset() {
				jv.Offset = &[2]int{v.OffsetX, v.OffsetY}
			}
			obj.Views = append(obj.Views, jv)
		}
		doc.Objects = append(doc.Objects, obj)
	}
	return doc
}

// instructions lowers the JSON form to the same stream Catalog.Instructions
// produces, so loading goes through the usual build checks.
func (doc jsonCatalog) instructions() ([]catalog.Instruction, error) {
	var out []catalog.Instruction
	for i, obj := range doc.Objects {
		t, err := catalog.ParseObjectType(obj.Type)
		if err != nil {
			return nil, fmt.Errorf("phase=parse path=objects[%d](%s): %w", i, obj.Name, err)
		}
		out = append(out, catalog.BeginObject{Name: obj.Name, Type: t})

		seen := make(map[catalog.ViewKey]bool, len(obj.Views))
		for j, jv := range obj.Views {
			path := fmt.Sprintf("objects[%d](%s)/views[%d]", i, obj.Name, j)
			face, err := catalog.ParseFace(jv.Face)
			if err != nil {
				return nil, fmt.Errorf("phase=parse path=%s: %w", path, err)
			}
			key := catalog.ViewKey{Face: face, Extent: catalog.Extent{X: jv.Extent[0], Y: jv.Extent[1], Z: jv.Extent[2]}}
			if seen[key] {
				return nil, fmt.Errorf("phase=parse path=%s: duplicate view %s", path, key)
			}
			seen[key] = true

			out = append(out, catalog.SetFacing{Face: face})
			if !key.Extent.IsZero() {
				out = append(out, catalog.SetExtent{Extent: key.Extent})
			}
			for _, s := range jv.Frames {
				a, err := catalog.ParseFrameAddress(s)
				if err != nil {
					return nil, fmt.Errorf("phase=parse path=%s: %w", path, err)
				}
				out = append(out, catalog.AddFrame{Shape: a.Shape(), Frame: a.Frame()})
			}
			if jv.Offset != nil || len(jv.Frames) == 0 {
				var x, y int
				if jv.Offset != nil {
					x, y = jv.Offset[0], jv.Offset[1]
				}
				out = append(out, catalog.SetViewOffset{X: x, Y: y})
			}
		}
	}
	return out, nil
}
