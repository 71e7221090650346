package bgeraser

import (
	"fmt"
	"image/color"
	"sync"
)

// Direction is the scan order of one sweep.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// sweepOrder is fixed: every sweep refines the map left by the previous one,
// and reordering changes the output on asymmetric edges.
var sweepOrder = [...]Direction{LeftToRight, RightToLeft, TopToBottom, BottomToTop}

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	case TopToBottom:
		return "top-to-bottom"
	case BottomToTop:
		return "bottom-to-top"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) horizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// extent returns the number of independent lines a sweep scans and the
// number of cells on each line.
func (d Direction) extent(w, h int) (lines, length int) {
	if d.horizontal() {
		return h, w
	}
	return w, h
}

// cell maps position k along line to image coordinates.
func (d Direction) cell(line, k, w, h int) (x, y int) {
	switch d {
	case LeftToRight:
		return k, line
	case RightToLeft:
		return w - 1 - k, line
	case TopToBottom:
		return line, k
	default:
		return line, h - 1 - k
	}
}

// refTo builds the reference a sweep in direction d records for the pixel
// at (x, y).
func (d Direction) refTo(x, y int) Ref {
	if d.horizontal() {
		return Ref{Kind: RefRow, Index: x}
	}
	return Ref{Kind: RefCol, Index: y}
}

type sweeper struct {
	grid      Grid
	bg        color.NRGBA
	tolerance uint8
	refs      RefMap
	dir       Direction
	// init is set on the first sweep, which classifies every cell from scratch.
	init      bool
}

func (s *sweeper) px(line, k int) color.NRGBA {
	x, y := s.dir.cell(line, k, s.grid.W, s.grid.H)
	return s.grid.At(x, y)
}

// run scans one line and returns the number of cells it marked as edges
// (first sweep) or refined (later sweeps).
func (s *sweeper) run(line int) int {
	w, h := s.grid.W, s.grid.H
	_, n := s.dir.extent(w, h)
	changed := 0

	for k := 0; k < n; k++ {
		x, y := s.dir.cell(line, k, w, h)
		if s.init {
			if closeToBackground(s.grid.At(x, y), s.bg, s.tolerance) {
				s.refs.set(x, y, backgroundRef)
				continue
			}
		} else if s.refs.At(x, y).Kind == RefBackground {
			continue
		}

		// Runs only start right after background or at the grid edge.
		if k > 0 {
			px, py := s.dir.cell(line, k-1, w, h)
			if s.refs.At(px, py).Kind != RefBackground {
				if s.init {
					s.refs.set(x, y, opaqueRef)
				}
				continue
			}
		}

		end := s.runEnd(line, k, n)
		if end > k {
			ox, oy := s.dir.cell(line, end, w, h)
			cand := s.dir.refTo(ox, oy)
			for j := k; j < end; j++ {
				cx, cy := s.dir.cell(line, j, w, h)
				if s.init {
					s.refs.set(cx, cy, cand)
					changed++
				} else if s.merge(cx, cy, cand) {
					changed++
				}
			}
		}
		if s.init {
			ex, ey := s.dir.cell(line, end, w, h)
			s.refs.set(ex, ey, opaqueRef)
		}
		k = end
	}
	return changed
}

// runEnd extends a gradient run starting at position k and returns the
// position of the pixel that terminates it. That pixel's color is the
// foreground every pixel of the run is reconstructed from.
func (s *sweeper) runEnd(line, k, n int) int {
	i := k
	for i+1 < n {
		cur, next := s.px(line, i), s.px(line, i+1)
		if closeToBackground(next, s.bg, s.tolerance) || !isGradient(cur, next, s.bg) {
			break
		}
		// The first steps of a run are accepted unconditionally.
		if i >= k+3 && !isConcaveUp(s.px(line, i-3), s.px(line, i-2), s.px(line, i-1), cur, s.bg) {
			break
		}
		i++
	}
	return i
}

// merge replaces the reference at (x, y) with cand when the cell is opaque
// or cand explains the observed pixel with more background showing through.
// Background cells are never touched.
func (s *sweeper) merge(x, y int, cand Ref) bool {
	cur := s.refs.At(x, y)
	switch cur.Kind {
	case RefBackground:
		return false
	case RefOpaque:
		s.refs.set(x, y, cand)
		return true
	}

	nx, ny := cand.source(x, y)
	ex, ey := cur.source(x, y)
	if isMoreTransparent(s.grid.At(nx, ny), s.grid.At(ex, ey), s.grid.At(x, y), s.bg) {
		s.refs.set(x, y, cand)
		return true
	}
	return false
}

// sweep runs s over every line, spreading lines across workers goroutines.
// Lines never share cells, so they can be scanned concurrently.
func (s *sweeper) sweep(workers int) int {
	lines, _ := s.dir.extent(s.grid.W, s.grid.H)
	if workers <= 1 || lines < 2 {
		changed := 0
		for line := range lines {
			changed += s.run(line)
		}
		return changed
	}

	workers = min(workers, lines)
	counts := make([]int, workers)
	var wg sync.WaitGroup
	for wk := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for line := wk; line < lines; line += workers {
				counts[wk] += s.run(line)
			}
		}()
	}
	wg.Wait()

	changed := 0
	for _, c := range counts {
		changed += c
	}
	return changed
}
