package movement

// FrameCycle is a small fixed sequence of sprite frame indices that a walk alternates through.
type FrameCycle []int

// Next returns the frame after current. A current frame outside the cycle
// starts it from the first entry.
func (c FrameCycle) Next(current int) int {
	if len(c) == 0 {
		return current
	}
	for i, f := range c {
		if f == current {
			return c[(i+1)%len(c)]
		}
	}
	return c[0]
}

// Frames maps orientations to sprite frames.
type Frames struct {
	Down int
	Up   int
	Walk FrameCycle // horizontal walk frames
}

// DefaultFrames matches a 4-frame sheet: down, up, walk A, walk B.
func DefaultFrames() Frames {
	return Frames{Down: 0, Up: 1, Walk: FrameCycle{2, 3}}
}

// Apply returns the frame index and horizontal flip after one substep facing o.
// Vertical travel keeps a fixed frame and toggles the flip each substep.
// Horizontal travel alternates walk frames; the sheet faces left, so Right is mirrored.
func (f Frames) Apply(o Orientation, index int, flipX bool) (int, bool) {
	switch o {
	case Down:
		return f.Down, !flipX
	case Up:
		return f.Up, !flipX
	case Left:
		return f.Walk.Next(index), false
	case Right:
		return f.Walk.Next(index), true
	default:
		return index, flipX
	}
}
