package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName             = errors.New("duplicate object name")
	ErrNotFound                  = errors.New("object not found")
	ErrInvalidExtentForCharacter = errors.New("characters cannot have extents")
	ErrInvalidCharacterView      = errors.New("character shapes must be added facing south with no extent")
	ErrOutOfRangeFrame           = errors.New("frame index out of range [0,31]")
	ErrNegativeShape             = errors.New("negative shape index")
	ErrShapeOutOfRange           = errors.New("shape index too large")
	ErrEmptyName                 = errors.New("empty object name")
	ErrInvalidName               = errors.New("object name has surrounding spaces or a line break")
	ErrNoObject                  = errors.New("no object started")
	ErrStreamEnded               = errors.New("instruction after end of stream")
	ErrStreamOpen                = errors.New("stream has not ended")
	ErrInvalidType               = errors.New("invalid object type")
	ErrInvalidFace               = errors.New("invalid facing")
)

// InstructionError reports the instruction that aborted a build.
// Index is the zero-based position in the stream; Object is the name of the
// object being built at the time, or empty when the cursor was idle.
type InstructionError struct {
	Index       int
	Instruction Instruction
	Object      string
	Err         error
}

func (e *InstructionError) Error() string {
	object := e.Object
	if object == "" {
		object = "<none>"
	}
	return fmt.Sprintf("instr=%d op=%s object=%s: %v", e.Index, e.Instruction, object, e.Err)
}

func (e *InstructionError) Unwrap() error { return e.Err }
