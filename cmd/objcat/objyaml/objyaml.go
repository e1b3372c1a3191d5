package objyaml

import (
	"fmt"

	"objcat/cmd/objcat/catalog"

	"gopkg.in/yaml.v3"
)

// Document is the Go-level representation of a parsed object file.
//
// Two YAML forms are supported:
//   - Mapping form (preferred): a mapping with "kinds" and "objects" keys.
//   - Shorthand form: a bare sequence of single-key steps, one per instruction.
type Document struct {
	Kinds   map[string]catalog.ObjectType
	Objects []ObjectDef
	Steps   []Step
}

// Add selects frames of one shape: the whole shape, a single frame, or an
// inclusive frame range.
type Add struct {
	Shape    int
	Frame    *int
	EndFrame *int
}

// Offset is a view's pixel offset.
type Offset struct {
	X, Y int
}

// ObjectDef describes one object. Add and Offset on the object apply to the
// south view the object starts with.
type ObjectDef struct {
	Name   string
	Kind   string
	Add    *Add
	Offset *Offset
	Parts  []PartDef
	Views  []ViewDef
}

// ViewDef describes a facing and its extended parts.
type ViewDef struct {
	Facing catalog.Face
	Add    *Add
	Offset *Offset
	Parts  []PartDef
}

// PartDef is an extended view at a non-zero extent of the enclosing facing.
type PartDef struct {
	Extent catalog.Extent
	Add    Add
	Offset *Offset
}

// Step is one shorthand instruction. Kind is set only for begin steps and
// is resolved to an ObjectType when the document is lowered.
type Step struct {
	Instruction catalog.Instruction
	Kind        string
}

// ---- Internal YAML parsing structs ----------------------------------------

type yamlDocument struct {
	Kinds   map[string]string `yaml:"kinds,omitempty"`
	Objects []yamlObject      `yaml:"objects,omitempty"`
}

type yamlAdd struct {
	Shape    *int `yaml:"shape,omitempty"`
	Frame    *int `yaml:"frame,omitempty"`
	EndFrame *int `yaml:"end_frame,omitempty"`
}

type yamlObject struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind,omitempty"`
	yamlAdd `yaml:",inline"`
	Offset  []int      `yaml:"offset,omitempty"`
	Parts   []yamlPart `yaml:"parts,omitempty"`
	Views   []yamlView `yaml:"views,omitempty"`
}

type yamlView struct {
	Facing  string `yaml:"facing"`
	yamlAdd `yaml:",inline"`
	Offset  []int      `yaml:"offset,omitempty"`
	Parts   []yamlPart `yaml:"parts,omitempty"`
}

type yamlPart struct {
	Extent  []int `yaml:"extent"`
	yamlAdd `yaml:",inline"`
	Offset  []int `yaml:"offset,omitempty"`
}

type yamlBegin struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"`
	Type string `yaml:"type,omitempty"`
}

// ---- Parse -----------------------------------------------------------------

// Parse parses and schema-validates a YAML document in either form.
func Parse(in []byte) (Document, error) {
	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	if len(docNode.Content) == 0 {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: empty YAML")
	}
	root := docNode.Content[0]

	var generic any
	if err := root.Decode(&generic); err != nil {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	if err := validate(generic); err != nil {
		return Document{}, fmt.Errorf("phase=schema path=<doc>: %w", err)
	}

	switch root.Kind {
	case yaml.SequenceNode:
		steps, err := convertSteps(root)
		if err != nil {
			return Document{}, err
		}
		return Document{Steps: steps}, nil

	case yaml.MappingNode:
		var yd yamlDocument
		if err := root.Decode(&yd); err != nil {
			return Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
		}
		return convertDocument(yd)

	default:
		return Document{}, fmt.Errorf("phase=parse path=<doc>: unexpected YAML root kind: %d", root.Kind)
	}
}

// ---- Convert: yaml types → public types ------------------------------------

func convertDocument(yd yamlDocument) (Document, error) {
	var doc Document
	if len(yd.Kinds) > 0 {
		doc.Kinds = make(map[string]catalog.ObjectType, len(yd.Kinds))
		for name, typ := range yd.Kinds {
			t, err := catalog.ParseObjectType(typ)
			if err != nil {
				return Document{}, fmt.Errorf("phase=parse path=kinds/%s: %w", name, err)
			}
			doc.Kinds[name] = t
		}
	}
	for i, yo := range yd.Objects {
		obj, err := convertObject(yo)
		if err != nil {
			return Document{}, fmt.Errorf("phase=parse path=objects[%d](%s): %w", i, yo.Name, err)
		}
		doc.Objects = append(doc.Objects, obj)
	}
	return doc, nil
}

func convertObject(yo yamlObject) (ObjectDef, error) {
	if yo.Name == "" {
		return ObjectDef{}, catalog.ErrEmptyName
	}
	obj := ObjectDef{Name: yo.Name, Kind: yo.Kind}
	if obj.Kind == "" {
		obj.Kind = "prop"
	}
	var err error
	if obj.Add, err = convertAdd(yo.yamlAdd); err != nil {
		return ObjectDef{}, err
	}
	if obj.Offset, err = convertOffset(yo.Offset); err != nil {
		return ObjectDef{}, err
	}
	if obj.Parts, err = convertParts(yo.Parts); err != nil {
		return ObjectDef{}, err
	}
	for _, yv := range yo.Views {
		v, err := convertView(yv)
		if err != nil {
			return ObjectDef{}, fmt.Errorf("view %s: %w", yv.Facing, err)
		}
		obj.Views = append(obj.Views, v)
	}
	return obj, nil
}

func convertView(yv yamlView) (ViewDef, error) {
	face, err := catalog.ParseFace(yv.Facing)
	if err != nil {
		return ViewDef{}, err
	}
	v := ViewDef{Facing: face}
	if v.Add, err = convertAdd(yv.yamlAdd); err != nil {
		return ViewDef{}, err
	}
	if v.Offset, err = convertOffset(yv.Offset); err != nil {
		return ViewDef{}, err
	}
	if v.Parts, err = convertParts(yv.Parts); err != nil {
		return ViewDef{}, err
	}
	return v, nil
}

func convertParts(raw []yamlPart) ([]PartDef, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]PartDef, 0, len(raw))
	for i, yp := range raw {
		if len(yp.Extent) != 3 {
			return nil, fmt.Errorf("part %d: extent needs 3 values, got %d", i, len(yp.Extent))
		}
		add, err := convertAdd(yp.yamlAdd)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		if add == nil {
			return nil, fmt.Errorf("part %d: missing shape", i)
		}
		off, err := convertOffset(yp.Offset)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		out = append(out, PartDef{
			Extent: catalog.Extent{X: yp.Extent[0], Y: yp.Extent[1], Z: yp.Extent[2]},
			Add:    *add,
			Offset: off,
		})
	}
	return out, nil
}

// convertAdd returns nil when no shape is given.
func convertAdd(ya yamlAdd) (*Add, error) {
	if ya.Shape == nil {
		if ya.Frame != nil || ya.EndFrame != nil {
			return nil, fmt.Errorf("frame given without shape")
		}
		return nil, nil
	}
	if ya.EndFrame != nil && ya.Frame == nil {
		return nil, fmt.Errorf("end_frame given without frame")
	}
	return &Add{Shape: *ya.Shape, Frame: ya.Frame, EndFrame: ya.EndFrame}, nil
}

func convertOffset(raw []int) (*Offset, error) {
	switch len(raw) {
	case 0:
		return nil, nil
	case 2:
		return &Offset{X: raw[0], Y: raw[1]}, nil
	default:
		return nil, fmt.Errorf("offset needs 2 values, got %d", len(raw))
	}
}

// convertSteps decodes the shorthand form. Each item is a mapping with
// exactly one key naming the step.
func convertSteps(root *yaml.Node) ([]Step, error) {
	steps := make([]Step, 0, len(root.Content))
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nil, fmt.Errorf("phase=parse path=steps[%d]: step must be a single-key mapping", i)
		}
		key, val := item.Content[0].Value, item.Content[1]
		st, err := convertStep(key, val)
		if err != nil {
			return nil, fmt.Errorf("phase=parse path=steps[%d](%s) line=%d: %w", i, key, item.Line, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func convertStep(key string, val *yaml.Node) (Step, error) {
	switch key {
	case "begin":
		var b yamlBegin
		if err := val.Decode(&b); err != nil {
			return Step{}, err
		}
		if b.Name == "" {
			return Step{}, catalog.ErrEmptyName
		}
		kind := b.Kind
		if kind == "" {
			kind = b.Type
		}
		if kind == "" {
			kind = "prop"
		}
		return Step{Instruction: catalog.BeginObject{Name: b.Name}, Kind: kind}, nil

	case "facing":
		face, err := catalog.ParseFace(val.Value)
		if err != nil {
			return Step{}, err
		}
		return Step{Instruction: catalog.SetFacing{Face: face}}, nil

	case "extent":
		v, err := decodeInts(val, 3)
		if err != nil {
			return Step{}, err
		}
		return Step{Instruction: catalog.SetExtent{Extent: catalog.Extent{X: v[0], Y: v[1], Z: v[2]}}}, nil

	case "shape":
		var shape int
		if err := val.Decode(&shape); err != nil {
			return Step{}, err
		}
		return Step{Instruction: catalog.AddFullShape{Shape: shape}}, nil

	case "frame":
		v, err := decodeInts(val, 2)
		if err != nil {
			return Step{}, err
		}
		return Step{Instruction: catalog.AddFrame{Shape: v[0], Frame: v[1]}}, nil

	case "range":
		v, err := decodeInts(val, 3)
		if err != nil {
			return Step{}, err
		}
		return Step{Instruction: catalog.AddFrameRange{Shape: v[0], Start: v[1], End: v[2]}}, nil

	case "offset":
		v, err := decodeInts(val, 2)
		if err != nil {
			return Step{}, err
		}
		return Step{Instruction: catalog.SetViewOffset{X: v[0], Y: v[1]}}, nil

	case "end":
		return Step{Instruction: catalog.EndStream{}}, nil

	default:
		return Step{}, fmt.Errorf("unknown step %q", key)
	}
}

func decodeInts(val *yaml.Node, n int) ([]int, error) {
	var v []int
	if err := val.Decode(&v); err != nil {
		return nil, err
	}
	if len(v) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(v))
	}
	return v, nil
}

// ---- Lowering --------------------------------------------------------------

// RegisterKinds adds the document's kinds to k.
func (d Document) RegisterKinds(k *catalog.Kinds) error {
	for name, t := range d.Kinds {
		if err := k.Register(name, t); err != nil {
			return fmt.Errorf("phase=parse path=kinds/%s: %w", name, err)
		}
	}
	return nil
}

// Instructions lowers the document to an instruction stream. Kinds must
// already be registered in k.
func (d Document) Instructions(k *catalog.Kinds) ([]catalog.Instruction, error) {
	var out []catalog.Instruction
	for _, st := range d.Steps {
		in := st.Instruction
		if b, ok := in.(catalog.BeginObject); ok {
			t, err := k.Resolve(st.Kind)
			if err != nil {
				return nil, fmt.Errorf("phase=lower path=%s: %w", b.Name, err)
			}
			b.Type = t
			in = b
		}
		out = append(out, in)
	}
	for _, obj := range d.Objects {
		lowered, err := obj.instructions(k)
		if err != nil {
			return nil, fmt.Errorf("phase=lower path=%s: %w", obj.Name, err)
		}
		out = append(out, lowered...)
	}
	return out, nil
}

func (o ObjectDef) instructions(k *catalog.Kinds) ([]catalog.Instruction, error) {
	t, err := k.Resolve(o.Kind)
	if err != nil {
		return nil, err
	}
	out := []catalog.Instruction{catalog.BeginObject{Name: o.Name, Type: t}}
	out = appendAdd(out, o.Add, o.Offset)
	out = appendParts(out, o.Parts)
	for _, v := range o.Views {
		out = append(out, catalog.SetFacing{Face: v.Facing})
		out = appendAdd(out, v.Add, v.Offset)
		out = appendParts(out, v.Parts)
	}
	return out, nil
}

func appendParts(out []catalog.Instruction, parts []PartDef) []catalog.Instruction {
	for _, p := range parts {
		out = append(out, catalog.SetExtent{Extent: p.Extent})
		out = appendAdd(out, &p.Add, p.Offset)
	}
	return out
}

func appendAdd(out []catalog.Instruction, a *Add, off *Offset) []catalog.Instruction {
	if a != nil {
		out = append(out, a.instruction())
	}
	if off != nil {
		out = append(out, catalog.SetViewOffset{X: off.X, Y: off.Y})
	}
	return out
}

func (a Add) instruction() catalog.Instruction {
	switch {
	case a.Frame == nil:
		return catalog.AddFullShape{Shape: a.Shape}
	case a.EndFrame == nil:
		return catalog.AddFrame{Shape: a.Shape, Frame: *a.Frame}
	default:
		return catalog.AddFrameRange{Shape: a.Shape, Start: *a.Frame, End: *a.EndFrame}
	}
}

// ---- Public build functions ------------------------------------------------

// NewKindsFromDocuments returns the built-in kinds plus the kinds declared in
// all provided documents.
func NewKindsFromDocuments(docs ...Document) (*catalog.Kinds, error) {
	k := catalog.NewKinds()
	for _, doc := range docs {
		if err := doc.RegisterKinds(k); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// Lower registers every document's kinds in k, then concatenates the
// documents' instruction streams in order.
func Lower(k *catalog.Kinds, docs ...Document) ([]catalog.Instruction, error) {
	for _, doc := range docs {
		if err := doc.RegisterKinds(k); err != nil {
			return nil, err
		}
	}
	var out []catalog.Instruction
	for _, doc := range docs {
		instrs, err := doc.Instructions(k)
		if err != nil {
			return nil, err
		}
		out = append(out, instrs...)
	}
	return out, nil
}

// Build parses a single YAML document and builds its catalog.
func Build(in []byte) (*catalog.Catalog, error) {
	doc, err := Parse(in)
	if err != nil {
		return nil, err
	}
	return BuildFromDocuments(doc)
}

// BuildMany parses multiple YAML documents, merges their kinds, concatenates
// their instructions in order, and builds one catalog.
func BuildMany(inputs ...[]byte) (*catalog.Catalog, error) {
	docs := make([]Document, 0, len(inputs))
	for _, in := range inputs {
		doc, err := Parse(in)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return BuildFromDocuments(docs...)
}

// BuildFromDocuments builds a catalog from already-parsed documents.
func BuildFromDocuments(docs ...Document) (*catalog.Catalog, error) {
	instrs, err := Lower(catalog.NewKinds(), docs...)
	if err != nil {
		return nil, err
	}
	return catalog.Build(instrs)
}
