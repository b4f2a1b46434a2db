// Package palette maps normalized case intensity to the map's heat colors.
package palette

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Five anchor colors, light through amber and orange to deep red. The first
// stop doubles as the no-data base color so zero-valued regions blend into
// the ramp.
var stops = [5]colorful.Color{
	mustHex("#E8F0E0"),
	mustHex("#F6D55C"),
	mustHex("#ED8936"),
	mustHex("#E53E3E"),
	mustHex("#9B2C2C"),
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(err)
	}
	return c
}

// NoData is the base color for regions without a metric record.
func NoData() colorful.Color {
	return stops[0]
}

// Heat maps t in [0,1] to a color, interpolating linearly in RGB across the
// four segments between the five stops. Out-of-range values clamp.
func Heat(t float64) colorful.Color {
	if t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	seg := t * float64(len(stops)-1)
	i := int(seg)
	return stops[i].BlendRgb(stops[i+1], seg-float64(i))
}

// HeatHex is Heat rendered as a #RRGGBB string for lipgloss styles.
func HeatHex(t float64) string {
	return Heat(t).Hex()
}
