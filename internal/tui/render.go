package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/format"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/geo"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/palette"
)

// projectMicro maps lon/lat to microgrid screen coordinates for a w×h cell
// map: normalize against the dataset bbox, then apply the viewport
// transform. Latitude flips because screen y grows downward.
func (m Model) projectMicro(lon, lat float64, w, h int) (int, int, bool) {
	bb := m.geo.BBox
	if !bb.Valid() || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	wMic := w * 2
	hMic := h * 4
	nx := (lon - bb.MinX) / (bb.MaxX - bb.MinX)
	ny := (lat - bb.MinY) / (bb.MaxY - bb.MinY)
	cx := nx * float64(wMic-1)
	cy := (1 - ny) * float64(hMic-1)
	sx, sy := m.view.Apply(cx, cy)
	return int(sx), int(sy), true
}

// cellToLonLat inverts a map cell back to lon/lat through the viewport.
func (m Model) cellToLonLat(cellX, cellY, w, h int) (float64, float64, bool) {
	bb := m.geo.BBox
	if !bb.Valid() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	wMic := w * 2
	hMic := h * 4
	// cell center on the microgrid
	sx := float64(cellX*2) + 0.5
	sy := float64(cellY*4) + 1.5
	cx, cy := m.view.Invert(sx, sy)
	nx := cx / float64(wMic-1)
	ny := 1 - cy/float64(hMic-1)
	lon := bb.MinX + nx*(bb.MaxX-bb.MinX)
	lat := bb.MinY + ny*(bb.MaxY-bb.MinY)
	return lon, lat, true
}

// regionAt returns the region under a map cell, or nil.
func (m Model) regionAt(cellX, cellY, w, h int) *geo.Region {
	lon, lat, ok := m.cellToLonLat(cellX, cellY, w, h)
	if !ok {
		return nil
	}
	for i := range m.geo.Regions {
		if m.geo.Regions[i].Contains(lon, lat) {
			return &m.geo.Regions[i]
		}
	}
	return nil
}

// regionCanvasBBox returns a region's bounding box in canvas microgrid
// coordinates (pre-viewport), the space FitBounds expects.
func (m Model) regionCanvasBBox(r *geo.Region, w, h int) geo.BBox {
	bb := m.geo.BBox
	wMic := float64(w*2 - 1)
	hMic := float64(h*4 - 1)
	toX := func(lon float64) float64 { return (lon - bb.MinX) / (bb.MaxX - bb.MinX) * wMic }
	toY := func(lat float64) float64 { return (1 - (lat-bb.MinY)/(bb.MaxY-bb.MinY)) * hMic }
	// latitude flip swaps min/max on y
	return geo.BBox{
		MinX: toX(r.BBox.MinX),
		MaxX: toX(r.BBox.MaxX),
		MinY: toY(r.BBox.MaxY),
		MaxY: toY(r.BBox.MinY),
	}
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	hMic := h * 4
	wMic := w * 2

	// pass 1: fills
	for i := range m.geo.Regions {
		r := &m.geo.Regions[i]
		hex := palette.HeatHex(m.intensityFor(r.Code))
		for _, poly := range r.Polygons {
			m.fillPolygon(br, poly, w, h, wMic, hMic, hex)
		}
	}

	// pass 2: outlines; hovered and selected last so their color wins on
	// shared cells
	m.strokeRegions(br, w, h, func(r *geo.Region) bool {
		if r.Code == m.sel.Code() {
			return false
		}
		return !(m.hovering && r.Code == m.hoverCode)
	}, borderHex)
	if m.hovering && m.hoverCode != "" && m.hoverCode != m.sel.Code() {
		if r := m.geo.ByCode(m.hoverCode); r != nil {
			m.strokeOne(br, r, w, h, hoverHex)
		}
	}
	if m.sel.Active() {
		if r := m.geo.ByCode(m.sel.Code()); r != nil {
			m.strokeOne(br, r, w, h, selectedHex)
		}
	}

	// region labels appear once zoomed in; terminal glyphs are fixed-size,
	// so labels stay visually constant regardless of scale
	if m.view.Scale >= 2.5 {
		m.drawLabels(br, w, h)
	}

	if m.hovering && m.hoverCode != "" {
		m.drawTooltip(br, w, h)
	}

	return strings.Join(br.toLines(), "\n")
}

// fillPolygon rasterizes one polygon (outer ring plus holes) with even-odd
// scanline filling on the microgrid.
func (m Model) fillPolygon(br *brailleBuf, poly [][][2]float64, w, h, wMic, hMic int, hex string) {
	type edge struct{ x0, y0, x1, y1 int }
	var edges []edge
	minY, maxY := hMic, 0
	for _, ring := range poly {
		var pts [][2]int
		for _, p := range ring {
			sx, sy, ok := m.projectMicro(p[0], p[1], w, h)
			if !ok {
				return
			}
			pts = append(pts, [2]int{sx, sy})
			if sy < minY {
				minY = sy
			}
			if sy > maxY {
				maxY = sy
			}
		}
		if len(pts) < 3 {
			continue
		}
		for i := 0; i < len(pts); i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			edges = append(edges, edge{a[0], a[1], b[0], b[1]})
		}
	}
	if len(edges) == 0 {
		return
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > hMic-1 {
		maxY = hMic - 1
	}
	for yMic := minY; yMic <= maxY; yMic++ {
		var xs []int
		for _, e := range edges {
			if (yMic >= e.y0 && yMic < e.y1) || (yMic >= e.y1 && yMic < e.y0) {
				t := float64(yMic-e.y0) / float64(e.y1-e.y0)
				xs = append(xs, int(float64(e.x0)+t*float64(e.x1-e.x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0, x1 := xs[i], xs[i+1]
			if x0 > x1 {
				x0, x1 = x1, x0
			}
			for x := maxi(0, x0); x <= mini(x1, wMic-1); x++ {
				br.setPixel(x, yMic, hex)
			}
		}
	}
}

func (m Model) strokeRegions(br *brailleBuf, w, h int, include func(*geo.Region) bool, hex string) {
	for i := range m.geo.Regions {
		r := &m.geo.Regions[i]
		if !include(r) {
			continue
		}
		m.strokeOne(br, r, w, h, hex)
	}
}

func (m Model) strokeOne(br *brailleBuf, r *geo.Region, w, h int, hex string) {
	for _, poly := range r.Polygons {
		for _, ring := range poly {
			var prev [2]int
			has := false
			var first [2]int
			for _, p := range ring {
				sx, sy, ok := m.projectMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				if has {
					br.drawLineMicro(prev[0], prev[1], sx, sy, hex)
				} else {
					first = [2]int{sx, sy}
				}
				prev = [2]int{sx, sy}
				has = true
			}
			if has {
				br.drawLineMicro(prev[0], prev[1], first[0], first[1], hex)
			}
		}
	}
}

func (m Model) drawLabels(br *brailleBuf, w, h int) {
	for i := range m.geo.Regions {
		r := &m.geo.Regions[i]
		midLon := (r.BBox.MinX + r.BBox.MaxX) / 2
		midLat := (r.BBox.MinY + r.BBox.MaxY) / 2
		sx, sy, ok := m.projectMicro(midLon, midLat, w, h)
		if !ok {
			continue
		}
		label := format.DisplayName(r.Name)
		if rs := []rune(label); len(rs) > 14 {
			label = string(rs[:14])
		}
		cx := sx/2 - len([]rune(label))/2
		cy := sy / 4
		br.setText(cx, cy, label, labelHex)
	}
}

// drawTooltip writes the hover card into the overlay plane next to the
// cursor, flipping to the other side near the edges.
func (m Model) drawTooltip(br *brailleBuf, w, h int) {
	r := m.geo.ByCode(m.hoverCode)
	if r == nil {
		return
	}
	lines := []string{format.DisplayName(r.Name)}
	if rec, ok := m.metricsFor(r.Code); ok {
		lines = append(lines,
			fmt.Sprintf("%s: %d", m.caseLabel(), rec.Cases),
			fmt.Sprintf("costo: %s", format.Currency(rec.Cost)),
			fmt.Sprintf("pacientes: %d", rec.Patients),
		)
	} else {
		lines = append(lines, "sin datos")
	}
	width := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	x := m.hoverX + 3
	if x+width >= w {
		x = m.hoverX - width - 3
	}
	y := m.hoverY + 1
	if y+len(lines) >= h {
		y = h - len(lines) - 1
	}
	for i, l := range lines {
		hex := hoverHex
		if i > 0 {
			hex = labelHex
		}
		br.setText(x, y+i, padRight(l, width-len([]rune(l))), hex)
	}
}

func padRight(s string, n int) string {
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
