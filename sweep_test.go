package bgeraser

import (
	"image/color"
	"math"
	"slices"
	"testing"
)

func row(rs ...Ref) []Ref { return rs }

var (
	bgRef = Ref{Kind: RefBackground}
	opRef = Ref{Kind: RefOpaque}
)

func rowRef(col int) Ref { return Ref{Kind: RefRow, Index: col} }
func colRef(y int) Ref   { return Ref{Kind: RefCol, Index: y} }

// runSweeps applies the given sweeps in order to a fresh reference map.
func runSweeps(g Grid, bg color.NRGBA, tolerance uint8, dirs ...Direction) RefMap {
	refs := newRefMap(g.W, g.H)
	for i, d := range dirs {
		s := sweeper{grid: g, bg: bg, tolerance: tolerance, refs: refs, dir: d, init: i == 0}
		s.sweep(1)
	}
	return refs
}

func mustGrid(t *testing.T, rows [][]color.NRGBA) Grid {
	t.Helper()
	g, err := NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestSweepRows(t *testing.T) {
	tests := []struct {
		name  string
		px    []color.NRGBA
		want  []Ref
		image []color.NRGBA
	}{
		{
			name:  "half blend before solid",
			px:    []color.NRGBA{white, white, gray(127), black, black},
			want:  row(bgRef, bgRef, rowRef(3), opRef, opRef),
			image: []color.NRGBA{{}, {}, {A: 128}, black, black},
		},
		{
			name:  "trailing edge found right to left",
			px:    []color.NRGBA{white, black, gray(127), white},
			want:  row(bgRef, opRef, rowRef(1), bgRef),
			image: []color.NRGBA{{}, black, {A: 128}, {}},
		},
		{
			name:  "concavity ends run",
			px:    []color.NRGBA{white, gray(204), gray(153), gray(102), gray(51), black},
			want:  row(bgRef, rowRef(4), rowRef(4), rowRef(4), opRef, opRef),
			image: []color.NRGBA{{}, {R: 51, G: 51, B: 51, A: 64}, {R: 51, G: 51, B: 51, A: 128}, {R: 51, G: 51, B: 51, A: 191}, gray(51), black},
		},
		{
			name:  "steepening ramp",
			px:    []color.NRGBA{white, gray(230), gray(180), gray(100), gray(20), black},
			want:  row(bgRef, rowRef(5), rowRef(5), rowRef(5), rowRef(5), opRef),
			image: []color.NRGBA{{}, {A: 25}, {A: 75}, {A: 155}, {A: 235}, black},
		},
		{
			name:  "run at grid edge",
			px:    []color.NRGBA{gray(127), black},
			want:  row(rowRef(1), opRef),
			image: []color.NRGBA{{A: 128}, black},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildRows(t, [][]color.NRGBA{tt.px}, white, DefaultOptions())
			if !slices.Equal(r.Refs().Cells, tt.want) {
				t.Errorf("refs = %v, want %v", r.Refs().Cells, tt.want)
			}
			img := r.Image()
			for x, want := range tt.image {
				if got := img.NRGBAAt(x, 0); got != want {
					t.Errorf("pixel %d = %v, want %v", x, got, want)
				}
			}
		})
	}
}

func TestSweepColumn(t *testing.T) {
	rows := [][]color.NRGBA{{white}, {white}, {gray(127)}, {black}, {black}}
	r := buildRows(t, rows, white, DefaultOptions())
	want := []Ref{bgRef, bgRef, colRef(3), opRef, opRef}
	if !slices.Equal(r.Refs().Cells, want) {
		t.Errorf("refs = %v, want %v", r.Refs().Cells, want)
	}
	if got := r.Image().NRGBAAt(0, 2); got != (color.NRGBA{A: 128}) {
		t.Errorf("edge pixel = %v, want black at alpha 128", got)
	}
}

func TestSweepConflictPrefersMoreTransparent(t *testing.T) {
	g := mustGrid(t, [][]color.NRGBA{
		{white, white, white},
		{white, gray(191), gray(64)},
		{white, black, black},
	})

	rowsOnly := runSweeps(g, white, DefaultTolerance, LeftToRight, RightToLeft)
	if got := rowsOnly.At(1, 1); got != rowRef(2) {
		t.Fatalf("after row sweeps (1,1) = %v, want %v", got, rowRef(2))
	}

	refs := runSweeps(g, white, DefaultTolerance, sweepOrder[:]...)
	want := []Ref{
		bgRef, bgRef, bgRef,
		bgRef, colRef(2), colRef(2),
		bgRef, opRef, opRef,
	}
	if !slices.Equal(refs.Cells, want) {
		t.Errorf("refs = %v, want %v", refs.Cells, want)
	}

	r := &Remover{Input: g, Background: white, refs: refs, built: true}
	if got := r.Image().NRGBAAt(1, 1); got != (color.NRGBA{A: 64}) {
		t.Errorf("(1,1) = %v, want black at alpha 64", got)
	}
	if got := r.Image().NRGBAAt(2, 1); got != (color.NRGBA{A: 191}) {
		t.Errorf("(2,1) = %v, want black at alpha 191", got)
	}
}

// diskGrid draws an anti-aliased black disk on white.
func diskGrid(size int, radius float64) Grid {
	g := Grid{W: size, H: size, Pix: make([]color.NRGBA, size*size)}
	c := float64(size-1) / 2
	for y := range size {
		for x := range size {
			d := math.Hypot(float64(x)-c, float64(y)-c)
			cov := max(0, min(1, radius+0.5-d))
			g.Pix[y*size+x] = gray(uint8(math.Round(255 * (1 - cov))))
		}
	}
	return g
}

func TestSweepRefinementIsMonotonic(t *testing.T) {
	g := diskGrid(24, 7.3)
	refs := newRefMap(g.W, g.H)
	alphas := func() []int {
		r := &Remover{Input: g, Background: white, refs: refs, built: true}
		out := make([]int, len(refs.Cells))
		for i := range refs.Cells {
			out[i] = int(r.pixelFor(i%g.W, i/g.W).A)
		}
		return out
	}

	for i, d := range sweepOrder {
		before := refs.Clone()
		prev := alphas()
		s := sweeper{grid: g, bg: white, tolerance: DefaultTolerance, refs: refs, dir: d, init: i == 0}
		s.sweep(1)
		if i == 0 {
			continue
		}
		cur := alphas()
		for j, old := range before.Cells {
			if old.Kind == RefBackground && refs.Cells[j].Kind != RefBackground {
				t.Fatalf("%v: background cell %d reclassified as %v", d, j, refs.Cells[j])
			}
			if old.IsEdge() && cur[j] > prev[j] {
				t.Errorf("%v: cell %d alpha rose from %d to %d", d, j, prev[j], cur[j])
			}
		}
	}
	if refs.Count(RefRow)+refs.Count(RefCol) == 0 {
		t.Error("anti-aliased disk produced no edge cells")
	}
}

func TestSweepWorkersMatchSequential(t *testing.T) {
	g := diskGrid(31, 10.6)
	seq := &Remover{Input: g, Background: white}
	seq.Build(Options{Tolerance: DefaultTolerance, Workers: 1})
	par := &Remover{Input: g, Background: white}
	par.Build(Options{Tolerance: DefaultTolerance, Workers: 4})
	if !slices.Equal(seq.Refs().Cells, par.Refs().Cells) {
		t.Error("parallel sweep produced a different reference map")
	}
}

func TestDirectionCell(t *testing.T) {
	const w, h = 4, 3
	tests := []struct {
		d            Direction
		line, k      int
		wantX, wantY int
	}{
		{LeftToRight, 1, 0, 0, 1},
		{RightToLeft, 1, 0, 3, 1},
		{TopToBottom, 2, 1, 2, 1},
		{BottomToTop, 2, 0, 2, 2},
	}
	for _, tt := range tests {
		x, y := tt.d.cell(tt.line, tt.k, w, h)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%v.cell(%d, %d) = (%d, %d), want (%d, %d)", tt.d, tt.line, tt.k, x, y, tt.wantX, tt.wantY)
		}
	}
	if lines, n := TopToBottom.extent(w, h); lines != w || n != h {
		t.Errorf("TopToBottom.extent = %d, %d", lines, n)
	}
}
