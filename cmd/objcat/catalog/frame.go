package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FramesPerShape is the number of frames a shape bundles.
const FramesPerShape = 32

// MaxShape is the largest shape index whose addresses still fit in an int.
const MaxShape = (math.MaxInt - (FramesPerShape - 1)) / FramesPerShape

// FrameAddress is a normalized (shape, frame) pair: shape*32 + frame.
type FrameAddress int

// Encode packs a shape and frame index into a FrameAddress.
// shape must pass CheckShape and frame must be in [0, FramesPerShape); the
// interpreter checks both before calling Encode.
func Encode(shape, frame int) FrameAddress {
	return FrameAddress(shape*FramesPerShape + frame)
}

// Decode splits the address back into its shape and frame index.
func (a FrameAddress) Decode() (shape, frame int) {
	return int(a) / FramesPerShape, int(a) % FramesPerShape
}

func (a FrameAddress) Shape() int { return int(a) / FramesPerShape }
func (a FrameAddress) Frame() int { return int(a) % FramesPerShape }

// String renders the address as "shape:frame", the literal used by reports.
func (a FrameAddress) String() string {
	s, f := a.Decode()
	return fmt.Sprintf("%d:%d", s, f)
}

// CheckShape returns ErrNegativeShape or ErrShapeOutOfRange when shape
// cannot be encoded.
func CheckShape(shape int) error {
	switch {
	case shape < 0:
		return fmt.Errorf("%w: %d", ErrNegativeShape, shape)
	case shape > MaxShape:
		return fmt.Errorf("%w: %d (max %d)", ErrShapeOutOfRange, shape, MaxShape)
	}
	return nil
}

// ValidFrame reports whether frame is a legal frame index within a shape.
func ValidFrame(frame int) bool {
	return frame >= 0 && frame < FramesPerShape
}

// ParseFrameAddress parses the "shape:frame" literal written by String.
func ParseFrameAddress(s string) (FrameAddress, error) {
	shapeStr, frameStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("frame address %q: expected shape:frame", s)
	}
	shape, err := strconv.Atoi(shapeStr)
	if err != nil {
		return 0, fmt.Errorf("frame address %q: bad shape: %w", s, err)
	}
	frame, err := strconv.Atoi(frameStr)
	if err != nil {
		return 0, fmt.Errorf("frame address %q: bad frame: %w", s, err)
	}
	if err := CheckShape(shape); err != nil {
		return 0, fmt.Errorf("frame address %q: %w", s, err)
	}
	if !ValidFrame(frame) {
		return 0, fmt.Errorf("frame address %q: %w", s, ErrOutOfRangeFrame)
	}
	return Encode(shape, frame), nil
}
