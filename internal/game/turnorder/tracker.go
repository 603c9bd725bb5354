// Package turnorder tracks a circular seating order of dense positions
// 0..n-1, the current-turn pointer and the direction of play. It knows
// nothing about players or cards; callers map positions to players.
package turnorder

import "fmt"

// Tracker tracks the current turn position within a circle of n seats.
type Tracker struct {
	n         int
	current   int
	clockwise bool
}

// New creates a tracker over n dense seats, starting at seat 0 going
// clockwise.
func New(n int) (*Tracker, error) {
	if n <= 0 {
		return nil, fmt.Errorf("seat count must be positive, got %d", n)
	}
	return &Tracker{n: n, current: 0, clockwise: true}, nil
}

// Size returns the number of live seats.
func (t *Tracker) Size() int {
	return t.n
}

// Current returns the position whose turn it is.
func (t *Tracker) Current() int {
	return t.current
}

// Clockwise reports the direction of play.
func (t *Tracker) Clockwise() bool {
	return t.clockwise
}

// Reverse flips the direction of play.
func (t *Tracker) Reverse() {
	t.clockwise = !t.clockwise
}

// step returns the signed unit step for the current direction.
func (t *Tracker) step() int {
	if t.clockwise {
		return 1
	}
	return -1
}

// mod normalizes x into [0, n). Go's % can yield negative values for
// negative x, so the addition is folded in before the final reduction.
func mod(x, n int) int {
	return ((x % n) + n) % n
}

// Advance moves the turn pointer one seat in the current direction
// and returns the new current position. Positions are kept dense, so a
// single modulo step always lands on a live seat.
func (t *Tracker) Advance() int {
	t.current = mod(t.current+t.step(), t.n)
	return t.current
}

// SetCurrent repoints the turn pointer, used when the current player
// changes seats mid-turn.
func (t *Tracker) SetCurrent(pos int) error {
	if pos < 0 || pos >= t.n {
		return fmt.Errorf("seat %d out of range [0, %d)", pos, t.n)
	}
	t.current = pos
	return nil
}

// Neighbor returns the seat adjacent to pos in the current direction.
func (t *Tracker) Neighbor(pos int) int {
	return mod(pos+t.step(), t.n)
}

// Adjacent reports whether positions a and b sit next to each other in
// either direction.
func (t *Tracker) Adjacent(a, b int) bool {
	return b == mod(a+1, t.n) || b == mod(a-1, t.n)
}

// Remove deletes the seat at pos and re-densifies the circle: every
// seat above pos shifts down by one, and if pos was at or below the
// current-turn pointer the pointer shifts down with it so that it keeps
// denoting the same relative next seat. The caller is responsible for
// shifting its own position-to-player mapping the same way.
func (t *Tracker) Remove(pos int) error {
	if pos < 0 || pos >= t.n {
		return fmt.Errorf("seat %d out of range [0, %d)", pos, t.n)
	}
	if t.n == 1 {
		return fmt.Errorf("cannot remove the last seat")
	}

	t.n--
	if pos <= t.current {
		t.current = mod(t.current-1, t.n)
	}
	return nil
}
