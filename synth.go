package bgeraser

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"
)

// pixelFor resolves the output pixel of the cell at (x, y).
func (r *Remover) pixelFor(x, y int) color.NRGBA {
	ref := r.refs.At(x, y)
	switch ref.Kind {
	case RefBackground:
		return color.NRGBA{}
	case RefOpaque:
		return r.Input.At(x, y)
	}
	sx, sy := ref.source(x, y)
	p, ok := inferAlpha(r.Input.At(x, y), r.Input.At(sx, sy), r.Background)
	if !ok {
		return color.NRGBA{}
	}
	return p
}

// Image returns the cutout. Background cells are fully transparent, opaque
// cells keep their input pixel and edge cells carry the reconstructed
// foreground color at the inferred alpha. Image builds with DefaultOptions
// if Build has not been called.
func (r *Remover) Image() *image.NRGBA {
	r.ensureBuilt()
	w, h := r.Input.W, r.Input.H
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			out.SetNRGBA(x, y, r.pixelFor(x, y))
		}
	}
	return out
}

// AlphaMask returns the alpha channel of Image as a grayscale image.
func (r *Remover) AlphaMask() *image.Gray {
	r.ensureBuilt()
	w, h := r.Input.W, r.Input.H
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			mask.SetGray(x, y, color.Gray{Y: r.pixelFor(x, y).A})
		}
	}
	return mask
}

var refColors = [...]color.NRGBA{
	RefBackground: {A: 255},
	RefOpaque:     {R: 255, G: 255, B: 255, A: 255},
	RefRow:        {R: 255, A: 255},
	RefCol:        {B: 255, A: 255},
}

// RefImage visualizes the reference map: background black, opaque white,
// row references red and column references blue.
func (r *Remover) RefImage() *image.NRGBA {
	r.ensureBuilt()
	w, h := r.refs.W, r.refs.H
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, refColors[r.refs.At(x, y).Kind])
		}
	}
	return img
}

// Summary describes the classification of a built Remover.
type Summary struct {
	Background      int
	Opaque          int
	Edge            int
	// Mean and sample standard deviation of the output alpha of edge cells.
	EdgeAlphaMean   float64
	EdgeAlphaStdDev float64
}

func (r *Remover) Summary() Summary {
	r.ensureBuilt()
	var s Summary
	alphas := make([]float64, 0)
	for y := range r.refs.H {
		for x := range r.refs.W {
			switch r.refs.At(x, y).Kind {
			case RefBackground:
				s.Background++
			case RefOpaque:
				s.Opaque++
			default:
				s.Edge++
				alphas = append(alphas, float64(r.pixelFor(x, y).A))
			}
		}
	}
	switch len(alphas) {
	case 0:
	case 1:
		s.EdgeAlphaMean = alphas[0]
	default:
		s.EdgeAlphaMean, s.EdgeAlphaStdDev = stat.MeanStdDev(alphas, nil)
	}
	return s
}
