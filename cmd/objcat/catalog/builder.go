package catalog

// Build runs an instruction stream through a fresh Cursor and returns the
// finished catalog. A stream that does not end with EndStream is ended
// implicitly. The first failing instruction aborts the build; the returned
// error is an *InstructionError wrapping one of the package sentinels.
func Build(instrs []Instruction) (*Catalog, error) {
	cur := NewCursor()
	for _, in := range instrs {
		if err := cur.Apply(in); err != nil {
			return nil, err
		}
	}
	if !cur.Ended() {
		if err := cur.Apply(EndStream{}); err != nil {
			return nil, err
		}
	}
	return cur.Catalog()
}
