package bgeraser

import (
	"image/color"
	"testing"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func gray(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 255}
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// buildRows builds a remover over rows and runs every sweep with opt.
func buildRows(t *testing.T, rows [][]color.NRGBA, bg color.NRGBA, opt Options) *Remover {
	t.Helper()
	r, err := NewRemoverFromRows(rows, bg)
	if err != nil {
		t.Fatalf("NewRemoverFromRows: %v", err)
	}
	r.Build(opt)
	return r
}
