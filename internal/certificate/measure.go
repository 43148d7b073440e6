package certificate

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// extent is the measured size of a string at a face.
type extent struct {
	width  fixed.Int26_6
	height fixed.Int26_6
	// minX is the ink's left edge relative to the dot.
	minX fixed.Int26_6
}

// measure prefers the ink bounding box. When the face reports no ink (blank
// glyphs, bitmap faces without bounds) it falls back to the advance width and
// the line height.
func measure(face font.Face, s string) extent {
	b, adv := font.BoundString(face, s)
	if !b.Empty() {
		return extent{
			width:  b.Max.X - b.Min.X,
			height: b.Max.Y - b.Min.Y,
			minX:   b.Min.X,
		}
	}
	if adv == 0 {
		adv = font.MeasureString(face, s)
	}
	m := face.Metrics()
	return extent{width: adv, height: m.Ascent + m.Descent}
}

// centerX places the ink of a string of extent e centered on an image of
// width w.
func centerX(w int, e extent) fixed.Int26_6 {
	return (fixed.I(w)-e.width)/2 - e.minX
}
