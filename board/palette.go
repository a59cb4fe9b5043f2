package board

import (
	"fmt"
	"math"
)

// DefaultPalette is the fixed list of pair colors handed out before the
// palette falls back to generated hues.
var DefaultPalette = []Color{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4",
	"#46f0f0", "#f032e6", "#bcf60c", "#fabebe", "#008080",
	"#e6beff", "#9a6324", "#800000", "#aaffc3", "#808000",
	"#000075",
}

// goldenAngle spreads generated hues evenly around the color wheel.
const goldenAngle = 137.508

// Palette produces deterministic pair colors from a running counter. The
// counter is owned by the caller so it can be snapshotted and restored.
type Palette struct {
	base []Color
}

// NewPalette returns a palette over base, or DefaultPalette when base is empty.
func NewPalette(base ...Color) *Palette {
	if len(base) == 0 {
		base = DefaultPalette
	}
	cp := make([]Color, len(base))
	copy(cp, base)

	return &Palette{base: cp}
}

// Color returns the color for counter value n.
func (p *Palette) Color(n int) Color {
	if n < 0 {
		n = 0
	}
	if n < len(p.base) {
		return p.base[n]
	}
	hue := math.Mod(float64(n-len(p.base))*goldenAngle, 360)

	return hslToHex(hue, 0.65, 0.5)
}

// Next returns the color for *counter and advances it.
func (p *Palette) Next(counter *int) Color {
	c := p.Color(*counter)
	*counter++

	return c
}

// hslToHex converts an HSL triple (h in degrees, s and l in [0,1]) to "#rrggbb".
func hslToHex(h, s, l float64) Color {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to8 := func(v float64) int { return int(math.Round((v + m) * 255)) }

	return Color(fmt.Sprintf("#%02x%02x%02x", to8(r), to8(g), to8(b)))
}
