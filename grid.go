package bgeraser

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrRaggedGrid is returned when the rows of a pixel grid differ in length.
var ErrRaggedGrid = errors.New("bgeraser: grid rows have unequal length")

// Channel names one of the three color components of a pixel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

func channelValue(p color.NRGBA, c Channel) int {
	switch c {
	case Red:
		return int(p.R)
	case Green:
		return int(p.G)
	default:
		return int(p.B)
	}
}

// Grid is a read-only, row-major pixel grid with non-premultiplied channels.
type Grid struct {
	W, H int
	Pix  []color.NRGBA // len = W*H
}

// NewGrid builds a grid from rows. Every row must have the same length.
func NewGrid(rows [][]color.NRGBA) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, nil
	}
	w := len(rows[0])
	g := Grid{W: w, H: len(rows), Pix: make([]color.NRGBA, 0, w*len(rows))}
	for y, row := range rows {
		if len(row) != w {
			return Grid{}, fmt.Errorf("row %d has %d pixels, want %d: %w", y, len(row), w, ErrRaggedGrid)
		}
		g.Pix = append(g.Pix, row...)
	}
	if w == 0 {
		// Rows without columns carry no pixels.
		return Grid{}, nil
	}
	return g, nil
}

// GridFromImage copies img into a grid whose origin is img.Bounds().Min.
func GridFromImage(img image.Image) Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return Grid{}
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != w*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	g := Grid{W: w, H: h, Pix: make([]color.NRGBA, w*h)}
	for i := range g.Pix {
		o := i * 4
		g.Pix[i] = color.NRGBA{R: nrgba.Pix[o], G: nrgba.Pix[o+1], B: nrgba.Pix[o+2], A: nrgba.Pix[o+3]}
	}
	return g
}

// At returns the pixel at column x, row y.
func (g Grid) At(x, y int) color.NRGBA {
	return g.Pix[y*g.W+x]
}

// Image returns the grid as an *image.NRGBA anchored at the origin.
func (g Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	for i, p := range g.Pix {
		o := i * 4
		img.Pix[o] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}
	return img
}
