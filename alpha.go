package bgeraser

import (
	"image/color"
	"math"
)

// inferAlpha solves for the alpha at which fg composited over bg looks like
// observed, judged on the channel where fg stands out most from bg.
// It returns fg carrying that alpha, or ok == false when observed is at least
// as far from bg as fg is (no blend exists) or fg matches bg on that channel.
func inferAlpha(observed, fg, bg color.NRGBA) (out color.NRGBA, ok bool) {
	ch := distinctChannel(fg, bg)
	cObs := channelValue(observed, ch)
	cFg := channelValue(fg, ch)
	cBg := channelValue(bg, ch)
	if cBg == cFg {
		return color.NRGBA{}, false
	}

	// floor(x+0.5) keeps halves rounding upward on both sides of zero.
	alpha := math.Floor(255*float64(cBg-cObs)/float64(cBg-cFg) + 0.5)
	if alpha >= 255 {
		return color.NRGBA{}, false
	}
	// Observed lies on the far side of the background; nothing of fg shows.
	alpha = max(alpha, 0)

	fg.A = uint8(alpha)
	return fg, true
}

// alphaOf is the alpha channel of inferAlpha, zero when it collapses.
func alphaOf(observed, fg, bg color.NRGBA) int {
	p, ok := inferAlpha(observed, fg, bg)
	if !ok {
		return 0
	}
	return int(p.A)
}

// isGradient reports whether a looks like a more transparent version of b.
func isGradient(a, b, bg color.NRGBA) bool {
	_, ok := inferAlpha(a, b, bg)
	return ok
}

// isMoreTransparent reports whether observed reads as a more transparent
// blend of fg1 than of fg2.
func isMoreTransparent(fg1, fg2, observed, bg color.NRGBA) bool {
	return alphaOf(observed, fg1, bg) < alphaOf(observed, fg2, bg)
}

// isConcaveUp reports whether the transparency change across four
// consecutive pixels, measured against the newest one, does not slow down.
func isConcaveUp(p1, p2, p3, p4, bg color.NRGBA) bool {
	a1 := alphaOf(p1, p4, bg)
	a2 := alphaOf(p2, p4, bg)
	a3 := alphaOf(p3, p4, bg)
	return a3-a2 >= a2-a1
}
