package board

import "testing"

func TestInBounds(t *testing.T) {
	b := New(9, 9)

	cases := []struct {
		p  Point
		ok bool
	}{
		{Point{0, 0}, true},
		{Point{8, 8}, true},
		{Point{9, 0}, false},
		{Point{0, 9}, false},
		{Point{-1, 0}, false},
	}

	for _, c := range cases {
		if got := b.InBounds(c.p); got != c.ok {
			t.Errorf("InBounds(%v) = %v, want %v", c.p, got, c.ok)
		}
	}
}

func TestNeighborsCorner(t *testing.T) {
	b := New(9, 9)
	n := b.Neighbors(Point{0, 0})
	if len(n) != 2 {
		t.Fatalf("expected 2 neighbors at corner, got %d: %v", len(n), n)
	}
}

func TestNeighborsCenter(t *testing.T) {
	b := New(9, 9)
	n := b.Neighbors(Point{4, 4})
	if len(n) != 4 {
		t.Fatalf("expected 4 neighbors at center, got %d: %v", len(n), n)
	}
}

func TestHashStableAcrossEqualBoards(t *testing.T) {
	a := New(5, 5)
	b := New(5, 5)
	a.Set(Point{1, 1}, 1)
	b.Set(Point{1, 1}, 1)

	if a.Hash() != b.Hash() {
		t.Fatal("equal boards hashed differently")
	}
	if !a.Equal(b) {
		t.Fatal("equal boards reported unequal")
	}
}

func TestHashChangesWithContent(t *testing.T) {
	a := New(5, 5)
	b := New(5, 5)
	a.Set(Point{1, 1}, 1)
	b.Set(Point{2, 2}, 1)

	if a.Hash() == b.Hash() {
		t.Fatal("distinct boards hashed identically")
	}
	if a.Equal(b) {
		t.Fatal("distinct boards reported equal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := New(5, 5)
	a.Set(Point{0, 0}, 1)
	clone := a.Clone()
	clone.Set(Point{0, 0}, 2)

	if a.Get(Point{0, 0}) != 1 {
		t.Fatal("mutating clone affected original")
	}
}

func TestCellsRoundTrip(t *testing.T) {
	a := New(5, 5)
	a.Set(Point{1, 2}, 1)
	a.Set(Point{3, 4}, 2)

	rebuilt := FromCells(5, 5, a.Cells())
	if !a.Equal(rebuilt) {
		t.Fatal("board did not round-trip through Cells/FromCells")
	}

	cells := a.Cells()
	cells[0] = 9
	if a.Get(Point{0, 0}) != 0 {
		t.Fatal("mutating the slice returned by Cells affected the board")
	}
}
