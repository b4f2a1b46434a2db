package tui

import "github.com/charmbracelet/lipgloss"

// brailleBuf rasterizes the map onto a 2x4-per-cell microgrid, with a color
// per cell and an optional text overlay plane (labels, tooltip) that takes
// precedence over braille output.
type brailleBuf struct {
	w, h  int        // in cells
	m     [][]uint8  // per-cell 8-bit braille mask
	color [][]string // per-cell fg hex, "" = default
	text  [][]rune   // overlay runes, 0 = none
	tcol  [][]string // overlay fg hex
}

func newBrailleBuf(w, h int) *brailleBuf {
	b := &brailleBuf{w: w, h: h}
	b.m = make([][]uint8, h)
	b.color = make([][]string, h)
	b.text = make([][]rune, h)
	b.tcol = make([][]string, h)
	for i := 0; i < h; i++ {
		b.m[i] = make([]uint8, w)
		b.color[i] = make([]string, w)
		b.text[i] = make([]rune, w)
		b.tcol[i] = make([]string, w)
	}
	return b
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell), tagging the
// owning cell with the color. Later writes win, so borders drawn after the
// fill keep their own color.
func (b *brailleBuf) setPixel(mx, my int, hex string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	if hex != "" {
		b.color[cy][cx] = hex
	}
}

// drawLineMicro draws a Bresenham line on the microgrid.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, hex string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, hex)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// setText writes a string into the overlay plane at cell coords. Clipped at
// the buffer edge.
func (b *brailleBuf) setText(cx, cy int, s string, hex string) {
	if cy < 0 || cy >= b.h {
		return
	}
	for _, r := range s {
		if cx < 0 {
			cx++
			continue
		}
		if cx >= b.w {
			return
		}
		b.text[cy][cx] = r
		b.tcol[cy][cx] = hex
		cx++
	}
}

// toLines renders the buffer. Runs of same-colored cells share one styled
// segment to keep the output compact.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var line string
		var run []rune
		runCol := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			s := string(run)
			if runCol != "" {
				s = lipgloss.NewStyle().Foreground(lipgloss.Color(runCol)).Render(s)
			}
			line += s
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			var r rune
			var col string
			switch {
			case b.text[y][x] != 0:
				r, col = b.text[y][x], b.tcol[y][x]
			case b.m[y][x] != 0:
				r, col = rune(0x2800+int(b.m[y][x])), b.color[y][x]
			default:
				r, col = ' ', ""
			}
			if col != runCol {
				flush()
				runCol = col
			}
			run = append(run, r)
		}
		flush()
		out[y] = line
	}
	return out
}
