package input

// Point is a position in playfield coordinates.
type Point struct {
	X, Y float64
}

// Latch holds the most recent click and pointer positions.
//
// The click is one-shot: the engine clears it at the end of every frame.
// The pointer persists until the next motion report. A Latch is owned by the
// game loop goroutine; hosts write to it at frame start, so it takes no lock.
type Latch struct {
	click      Point
	hasClick   bool
	pointer    Point
	hasPointer bool
}

// SetClick records a click at p.
func (l *Latch) SetClick(p Point) {
	l.click = p
	l.hasClick = true
}

// SetPointer records the latest pointer position.
func (l *Latch) SetPointer(p Point) {
	l.pointer = p
	l.hasPointer = true
}

// Click returns the click recorded this frame, if any.
func (l *Latch) Click() (Point, bool) {
	return l.click, l.hasClick
}

// Pointer returns the latest pointer position, if one was ever reported.
func (l *Latch) Pointer() (Point, bool) {
	return l.pointer, l.hasPointer
}

// ClearClick forgets the click. The pointer is kept.
func (l *Latch) ClearClick() {
	l.click = Point{}
	l.hasClick = false
}
