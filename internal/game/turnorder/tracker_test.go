package turnorder

import "testing"

func TestNew_RejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := New(n); err == nil {
			t.Errorf("Expected error for %d seats", n)
		}
	}
}

func TestAdvance_CyclesClockwise(t *testing.T) {
	tr, err := New(4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []int{1, 2, 3, 0, 1}
	for i, expected := range want {
		if got := tr.Advance(); got != expected {
			t.Errorf("Advance %d: expected %d, got %d", i, expected, got)
		}
	}
}

func TestAdvance_CyclesCounterClockwise(t *testing.T) {
	tr, _ := New(4)
	tr.Reverse()
	if tr.Clockwise() {
		t.Fatal("Expected counter-clockwise after Reverse")
	}

	want := []int{3, 2, 1, 0, 3}
	for i, expected := range want {
		if got := tr.Advance(); got != expected {
			t.Errorf("Advance %d: expected %d, got %d", i, expected, got)
		}
	}
}

func TestNeighbor_FollowsDirection(t *testing.T) {
	tr, _ := New(5)
	if got := tr.Neighbor(4); got != 0 {
		t.Errorf("Expected neighbor of 4 to wrap to 0, got %d", got)
	}
	tr.Reverse()
	if got := tr.Neighbor(0); got != 4 {
		t.Errorf("Expected neighbor of 0 to wrap to 4 counter-clockwise, got %d", got)
	}
}

func TestAdjacent_WrapsAround(t *testing.T) {
	tr, _ := New(4)

	cases := []struct {
		a, b int
		want bool
	}{
		{0, 1, true},
		{1, 0, true},
		{0, 3, true},
		{3, 0, true},
		{0, 2, false},
		{1, 3, false},
	}
	for _, c := range cases {
		if got := tr.Adjacent(c.a, c.b); got != c.want {
			t.Errorf("Adjacent(%d, %d): expected %v, got %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSetCurrent_Bounds(t *testing.T) {
	tr, _ := New(3)
	if err := tr.SetCurrent(2); err != nil {
		t.Errorf("SetCurrent(2) failed: %v", err)
	}
	if tr.Current() != 2 {
		t.Errorf("Expected current 2, got %d", tr.Current())
	}
	if err := tr.SetCurrent(3); err == nil {
		t.Error("Expected error for out-of-range seat")
	}
	if err := tr.SetCurrent(-1); err == nil {
		t.Error("Expected error for negative seat")
	}
}

func TestRemove_AboveCurrent(t *testing.T) {
	tr, _ := New(4)
	tr.Advance() // current = 1

	if err := tr.Remove(3); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if tr.Size() != 3 {
		t.Errorf("Expected 3 seats, got %d", tr.Size())
	}
	// Removed seat was above the pointer, so the pointer stays put.
	if tr.Current() != 1 {
		t.Errorf("Expected current 1, got %d", tr.Current())
	}
	if got := tr.Advance(); got != 2 {
		t.Errorf("Expected advance to 2, got %d", got)
	}
}

func TestRemove_AtOrBelowCurrentShiftsPointer(t *testing.T) {
	tr, _ := New(5)
	tr.Advance()
	tr.Advance() // current = 2

	// Removing a seat below the pointer shifts the pointer down with the
	// seats, so it still denotes the same player.
	if err := tr.Remove(0); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if tr.Current() != 1 {
		t.Errorf("Expected current 1 after removing seat 0, got %d", tr.Current())
	}

	// Removing the current seat itself leaves the pointer on the seat
	// before it, so the next Advance lands on the old relative-next.
	if err := tr.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if tr.Current() != 0 {
		t.Errorf("Expected current 0 after removing current seat, got %d", tr.Current())
	}
	if got := tr.Advance(); got != 1 {
		t.Errorf("Expected advance to 1, got %d", got)
	}
}

func TestRemove_CurrentAtZeroWraps(t *testing.T) {
	tr, _ := New(4)
	// current = 0; removing it must wrap the pointer to the new last seat
	// so that Advance lands on the old seat 1, now seat 0.
	if err := tr.Remove(0); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if tr.Current() != 2 {
		t.Errorf("Expected current to wrap to 2, got %d", tr.Current())
	}
	if got := tr.Advance(); got != 0 {
		t.Errorf("Expected advance to 0, got %d", got)
	}
}

func TestRemove_LastSeatFails(t *testing.T) {
	tr, _ := New(1)
	if err := tr.Remove(0); err == nil {
		t.Error("Expected error removing the last seat")
	}
}

func TestRemove_OutOfRange(t *testing.T) {
	tr, _ := New(3)
	if err := tr.Remove(3); err == nil {
		t.Error("Expected error for out-of-range seat")
	}
}
