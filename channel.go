package bgeraser

import "image/color"

// DefaultTolerance is the largest per-channel difference at which a pixel
// still counts as background.
const DefaultTolerance uint8 = 6

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// distinctChannel returns the color channel of p that differs most from bg.
// Ties resolve red against blue first, then green against blue.
func distinctChannel(p, bg color.NRGBA) Channel {
	dr := absDiff(int(p.R), int(bg.R))
	dg := absDiff(int(p.G), int(bg.G))
	db := absDiff(int(p.B), int(bg.B))
	if dr > dg {
		if dr > db {
			return Red
		}
		return Blue
	}
	if dg > db {
		return Green
	}
	return Blue
}

// closeToBackground reports whether no color channel of p differs from bg
// by more than tolerance. Alpha is ignored.
func closeToBackground(p, bg color.NRGBA, tolerance uint8) bool {
	d := max(
		absDiff(int(p.R), int(bg.R)),
		absDiff(int(p.G), int(bg.G)),
		absDiff(int(p.B), int(bg.B)),
	)
	return d <= int(tolerance)
}
