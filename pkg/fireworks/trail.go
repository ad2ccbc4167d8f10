package fireworks

// Point is a position in logical canvas pixels.
type Point struct {
	X, Y float64
}

// Trail keeps the last N positions of an entity, newest first. It is a ring
// so pushing never allocates once sized.
type Trail struct {
	points []Point
	head   int
}

// Reset sizes the trail to n entries, all set to p. Existing capacity is reused.
func (t *Trail) Reset(n int, p Point) {
	if n < 1 {
		n = 1
	}
	if cap(t.points) >= n {
		t.points = t.points[:n]
	} else {
		t.points = make([]Point, n)
	}
	for i := range t.points {
		t.points[i] = p
	}
	t.head = 0
}

// Push drops the oldest entry and records p as the newest.
func (t *Trail) Push(p Point) {
	n := len(t.points)
	if n == 0 {
		t.Reset(1, p)
		return
	}
	t.head = (t.head + n - 1) % n
	t.points[t.head] = p
}

// Len returns the configured length.
func (t *Trail) Len() int {
	return len(t.points)
}

// At returns the i-th entry, 0 being the newest.
func (t *Trail) At(i int) Point {
	n := len(t.points)
	if n == 0 {
		return Point{}
	}
	return t.points[(t.head+i)%n]
}

// Newest returns the most recently pushed position.
func (t *Trail) Newest() Point {
	return t.At(0)
}

// Oldest returns the position the motion streak is drawn from.
func (t *Trail) Oldest() Point {
	return t.At(len(t.points) - 1)
}
