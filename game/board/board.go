package board

import (
	"fmt"
	"math/rand"
	"sync"
)

// Color is a small integer tag: 0 is empty, 1..T is a team index, where T
// is the number of distinct teams in the game.
type Color uint8

// Empty reports whether c is the empty color.
func (c Color) Empty() bool { return c == 0 }

// maxZobristColors bounds how many distinct team colors the hash table
// carries per point. No composed variant in scope here fields more than a
// handful of teams, so this is generous headroom, not a tight limit.
const maxZobristColors = 32

// Point is a non-negative (x, y) coordinate pair.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Board is a width x height grid mapping Point to Color.
type Board struct {
	Width, Height int
	cells         []Color
	zobrist       *zobristTable
}

// New returns an empty board of the given dimensions.
func New(width, height int) *Board {
	return &Board{
		Width:   width,
		Height:  height,
		cells:   make([]Color, width*height),
		zobrist: zobristFor(width, height),
	}
}

// Clone returns a deep, independent copy of b.
func (b *Board) Clone() *Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return &Board{Width: b.Width, Height: b.Height, cells: cells, zobrist: b.zobrist}
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

func (b *Board) index(p Point) int { return p.Y*b.Width + p.X }

// Get returns the color at p. p must be in bounds.
func (b *Board) Get(p Point) Color { return b.cells[b.index(p)] }

// Set writes c at p. p must be in bounds.
func (b *Board) Set(p Point, c Color) { b.cells[b.index(p)] = c }

// Cells returns a flat, row-major copy of the board's contents, for wire
// encoding and persistence. The copy is independent of b.
func (b *Board) Cells() []Color {
	return append([]Color(nil), b.cells...)
}

// FromCells rebuilds a Board from a flat, row-major cell slice previously
// produced by Cells, the inverse operation used when decoding a
// persisted or transmitted board.
func FromCells(width, height int, cells []Color) *Board {
	b := New(width, height)
	copy(b.cells, cells)
	return b
}

// Neighbors returns the up-to-4 in-bounds orthogonal neighbors of p.
func (b *Board) Neighbors(p Point) []Point {
	candidates := [4]Point{
		{p.X, p.Y - 1},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y},
		{p.X + 1, p.Y},
	}
	out := make([]Point, 0, 4)
	for _, n := range candidates {
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Equal reports whether two boards have identical dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for i, c := range b.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit content fingerprint, stable across equal boards
// and, with overwhelming probability, distinct across unequal ones. It is
// a Zobrist hash: an XOR of independent random constants, one per
// (point, color) pair actually present on the board, computed fresh each
// call rather than maintained incrementally (see DESIGN.md).
func (b *Board) Hash() uint64 {
	var h uint64
	for i, c := range b.cells {
		if c == 0 {
			continue
		}
		h ^= b.zobrist.constant(i, c)
	}
	// Salt with dimensions so boards of different shape never collide
	// purely by chance of sharing a cached table lookup.
	h ^= uint64(b.Width)*0x9E3779B97F4A7C15 ^ uint64(b.Height)*0xC2B2AE3D27D4EB4F
	return h
}

// zobristTable holds the random constants backing Board.Hash for one
// (width, height) pair. Tables are generated lazily and cached so every
// Board of the same dimensions shares identical constants, which is what
// makes Hash a pure function of dimensions and contents.
type zobristTable struct {
	values []uint64 // size*maxZobristColors, indexed [cellIndex*maxZobristColors + (color-1)]
}

func (t *zobristTable) constant(cellIndex int, c Color) uint64 {
	slot := int(c) - 1
	if slot >= maxZobristColors {
		slot = slot % maxZobristColors
	}
	return t.values[cellIndex*maxZobristColors+slot]
}

var zobristCache sync.Map // map[[2]int]*zobristTable

func zobristFor(width, height int) *zobristTable {
	key := [2]int{width, height}
	if v, ok := zobristCache.Load(key); ok {
		return v.(*zobristTable)
	}
	// Seeded deterministically by dimensions: every table built for the
	// same (width, height) within this process is byte-identical, which
	// is all Hash's purity requirement needs.
	src := rand.New(rand.NewSource(int64(width)*1_000_003 + int64(height)))
	values := make([]uint64, width*height*maxZobristColors)
	for i := range values {
		values[i] = src.Uint64()
	}
	table := &zobristTable{values: values}
	actual, _ := zobristCache.LoadOrStore(key, table)
	return actual.(*zobristTable)
}
