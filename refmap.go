package bgeraser

import "fmt"

// RefKind tags the classification of one reference map cell.
type RefKind uint8

const (
	// RefBackground cells are erased.
	RefBackground RefKind = iota
	// RefOpaque cells are copied unchanged.
	RefOpaque
	// RefRow cells take their foreground color from column Index of the same row.
	RefRow
	// RefCol cells take their foreground color from row Index of the same column.
	RefCol
)

func (k RefKind) String() string {
	switch k {
	case RefBackground:
		return "background"
	case RefOpaque:
		return "opaque"
	case RefRow:
		return "row"
	case RefCol:
		return "col"
	default:
		return fmt.Sprintf("RefKind(%d)", uint8(k))
	}
}

// Ref is one cell of the reference map.
type Ref struct {
	Kind  RefKind
	Index int // column for RefRow, row for RefCol, unused otherwise
}

var (
	backgroundRef = Ref{Kind: RefBackground}
	opaqueRef     = Ref{Kind: RefOpaque}
)

func (r Ref) String() string {
	switch r.Kind {
	case RefRow, RefCol:
		return fmt.Sprintf("%s(%d)", r.Kind, r.Index)
	default:
		return r.Kind.String()
	}
}

// IsEdge reports whether the cell is reconstructed from another pixel.
func (r Ref) IsEdge() bool {
	return r.Kind == RefRow || r.Kind == RefCol
}

// source returns the coordinates of the pixel that r at (x, y) points to.
func (r Ref) source(x, y int) (int, int) {
	if r.Kind == RefCol {
		return x, r.Index
	}
	return r.Index, y
}

// RefMap holds one Ref per pixel, row-major.
type RefMap struct {
	W, H  int
	Cells []Ref // len = W*H
}

func newRefMap(w, h int) RefMap {
	return RefMap{W: w, H: h, Cells: make([]Ref, w*h)}
}

func (m RefMap) At(x, y int) Ref {
	return m.Cells[y*m.W+x]
}

func (m RefMap) set(x, y int, r Ref) {
	m.Cells[y*m.W+x] = r
}

// Count returns the number of cells of the given kind.
func (m RefMap) Count(kind RefKind) int {
	n := 0
	for _, c := range m.Cells {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of m.
func (m RefMap) Clone() RefMap {
	out := RefMap{W: m.W, H: m.H, Cells: make([]Ref, len(m.Cells))}
	copy(out.Cells, m.Cells)
	return out
}
