package catalog

import "fmt"

// Instruction is the sealed interface for the operations a Cursor accepts.
// The unexported isInstruction method keeps the set closed: each instruction
// has one fixed argument contract.
type Instruction interface {
	isInstruction()
	fmt.Stringer
}

// BeginObject flushes the pending object and starts a new one.
type BeginObject struct {
	Name string
	Type ObjectType
}

// SetFacing selects the facing for subsequent adds and resets the extent.
type SetFacing struct {
	Face Face
}

// SetExtent selects the part of a multi-part object for subsequent adds.
type SetExtent struct {
	Extent Extent
}

// AddFullShape appends all 32 frames of a shape to the current view.
// Characters split the shape 16/16 into their north and south views instead.
type AddFullShape struct {
	Shape int
}

// AddFrame appends a single frame to the current view.
type AddFrame struct {
	Shape int
	Frame int
}

// AddFrameRange appends frames Start..End inclusive to the current view.
type AddFrameRange struct {
	Shape int
	Start int
	End   int
}

// SetViewOffset sets the pixel offset of the current view.
type SetViewOffset struct {
	X, Y int
}

// EndStream flushes the pending object. It must be the last instruction.
type EndStream struct{}

func (BeginObject) isInstruction()   {}
func (SetFacing) isInstruction()     {}
func (SetExtent) isInstruction()     {}
func (AddFullShape) isInstruction()  {}
func (AddFrame) isInstruction()      {}
func (AddFrameRange) isInstruction() {}
func (SetViewOffset) isInstruction() {}
func (EndStream) isInstruction()     {}

func (i BeginObject) String() string { return fmt.Sprintf("BeginObject(%q, %s)", i.Name, i.Type) }
func (i SetFacing) String() string   { return fmt.Sprintf("SetFacing(%s)", i.Face) }
func (i SetExtent) String() string {
	return fmt.Sprintf("SetExtent(%d, %d, %d)", i.Extent.X, i.Extent.Y, i.Extent.Z)
}
func (i AddFullShape) String() string { return fmt.Sprintf("AddFullShape(%d)", i.Shape) }
func (i AddFrame) String() string     { return fmt.Sprintf("AddFrame(%d, %d)", i.Shape, i.Frame) }
func (i AddFrameRange) String() string {
	return fmt.Sprintf("AddFrameRange(%d, %d, %d)", i.Shape, i.Start, i.End)
}
func (i SetViewOffset) String() string { return fmt.Sprintf("SetViewOffset(%d, %d)", i.X, i.Y) }
func (EndStream) String() string       { return "EndStream()" }
