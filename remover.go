// Package bgeraser removes a solid background color from raster images,
// reconstructing partially transparent pixels along anti-aliased edges.
package bgeraser

import (
	"image"
	"image/color"
	"log/slog"
)

type Options struct {
	// Largest per-channel difference from the background at which a pixel
	// is erased outright. Raise it for noisy or compressed inputs; values
	// much above ~20 start eating into light anti-aliasing.
	Tolerance uint8
	// Goroutines scanning the lines of one sweep. Sweeps themselves always
	// run one after another. Values below 2 scan sequentially.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		Workers:   1,
	}
}

// Remover erases a solid background color from an image while keeping
// anti-aliased edges as partially transparent pixels.
type Remover struct {
	Input      Grid
	Background color.NRGBA
	refs       RefMap
	built      bool
}

// NewRemover prepares img for background removal. The alpha channel of
// background is ignored.
func NewRemover(img image.Image, background color.Color) *Remover {
	return &Remover{
		Input:      GridFromImage(img),
		Background: color.NRGBAModel.Convert(background).(color.NRGBA),
	}
}

// NewRemoverFromRows is like NewRemover for a row-major pixel grid. It fails
// with ErrRaggedGrid when the rows differ in length.
func NewRemoverFromRows(rows [][]color.NRGBA, background color.Color) (*Remover, error) {
	g, err := NewGrid(rows)
	if err != nil {
		return nil, err
	}
	return &Remover{
		Input:      g,
		Background: color.NRGBAModel.Convert(background).(color.NRGBA),
	}, nil
}

// Build classifies every pixel by running the four directional sweeps in
// order. Calling Build again starts over with the new options.
func (r *Remover) Build(opt Options) {
	r.refs = newRefMap(r.Input.W, r.Input.H)
	log := Logger().With(slog.Int("width", r.Input.W), slog.Int("height", r.Input.H))
	for i, d := range sweepOrder {
		s := sweeper{
			grid:      r.Input,
			bg:        r.Background,
			tolerance: opt.Tolerance,
			refs:      r.refs,
			dir:       d,
			init:      i == 0,
		}
		n := s.sweep(opt.Workers)
		log.Debug("bgeraser: sweep done", slog.String("direction", d.String()), slog.Int("cells", n))
	}
	r.built = true
}

// Refs returns a copy of the reference map, building with DefaultOptions if
// Build has not been called.
func (r *Remover) Refs() RefMap {
	r.ensureBuilt()
	return r.refs.Clone()
}

func (r *Remover) ensureBuilt() {
	if !r.built {
		r.Build(DefaultOptions())
	}
}

// RemoveBackground is a shortcut for NewRemover, Build and Image.
func RemoveBackground(img image.Image, background color.Color, opt Options) *image.NRGBA {
	r := NewRemover(img, background)
	r.Build(opt)
	return r.Image()
}
