// Package viewport maintains the affine scale+translate view state for the
// map canvas: cursor-anchored zoom, drag panning, and fit-to-feature.
package viewport

import (
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/geo"
)

const (
	MinScale   = 1.0
	MaxScale   = 6.0
	WheelStep  = 0.25
	ButtonStep = 0.5

	// FitBounds padding and ceiling: fitting a feature keeps breathing room
	// around it and never reaches full zoom.
	FitPadding   = 2.2
	FitMaxFactor = 0.6
)

// Transform maps canvas coordinates to screen coordinates:
// screen = canvas*Scale + T. Scale stays within [MinScale, MaxScale];
// translation is unconstrained.
type Transform struct {
	Scale float64
	TX    float64
	TY    float64
}

// New returns the identity transform.
func New() Transform {
	return Transform{Scale: MinScale}
}

// Apply maps a canvas point to screen space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.TX, y*t.Scale + t.TY
}

// Invert maps a screen point back to canvas space.
func (t Transform) Invert(sx, sy float64) (float64, float64) {
	return (sx - t.TX) / t.Scale, (sy - t.TY) / t.Scale
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ZoomAt steps the scale by step in the given direction (+1 in, -1 out),
// keeping the canvas point under the cursor fixed on screen. A step that
// clamps to the current scale is a no-op.
func (t *Transform) ZoomAt(cx, cy float64, dir int, step float64) {
	ns := clampScale(t.Scale + float64(dir)*step)
	if ns == t.Scale {
		return
	}
	ratio := ns / t.Scale
	t.TX = cx - ratio*(cx-t.TX)
	t.TY = cy - ratio*(cy-t.TY)
	t.Scale = ns
}

// Pan shifts the view by a screen-space delta.
func (t *Transform) Pan(dx, dy float64) {
	t.TX += dx
	t.TY += dy
}

// Reset restores the identity view.
func (t *Transform) Reset() {
	t.Scale = MinScale
	t.TX = 0
	t.TY = 0
}

// FitBounds zooms so the box (in canvas coordinates) fits a w×h canvas with
// FitPadding on both axes, capped at FitMaxFactor of the max zoom, and
// centers the box midpoint. Degenerate boxes and canvases are a no-op.
func (t *Transform) FitBounds(box geo.BBox, w, h float64) {
	if !box.Valid() || w <= 0 || h <= 0 {
		return
	}
	bw := (box.MaxX - box.MinX) * FitPadding
	bh := (box.MaxY - box.MinY) * FitPadding
	s := w / bw
	if hs := h / bh; hs < s {
		s = hs
	}
	if max := MaxScale * FitMaxFactor; s > max {
		s = max
	}
	if s < MinScale {
		s = MinScale
	}
	midX := (box.MinX + box.MaxX) / 2
	midY := (box.MinY + box.MaxY) / 2
	t.Scale = s
	t.TX = w/2 - s*midX
	t.TY = h/2 - s*midY
}
