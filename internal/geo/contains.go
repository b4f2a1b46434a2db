package geo

// Contains reports whether the lon/lat point falls inside the region using
// the even-odd rule. Holes subtract because each ring toggles the result.
func (r *Region) Contains(lon, lat float64) bool {
	if lon < r.BBox.MinX || lon > r.BBox.MaxX || lat < r.BBox.MinY || lat > r.BBox.MaxY {
		return false
	}
	inside := false
	for _, poly := range r.Polygons {
		for _, ring := range poly {
			if ringCrossings(ring, lon, lat)%2 == 1 {
				inside = !inside
			}
		}
	}
	return inside
}

// ringCrossings counts edges of the ring crossed by a ray going east from
// the point. Horizontal edges are skipped; each edge is half-open in y so a
// vertex is counted once.
func ringCrossings(ring [][2]float64, lon, lat float64) int {
	n := 0
	for i := 0; i < len(ring); i++ {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		if a[1] == b[1] {
			continue
		}
		if (lat >= a[1] && lat < b[1]) || (lat >= b[1] && lat < a[1]) {
			t := (lat - a[1]) / (b[1] - a[1])
			x := a[0] + t*(b[0]-a[0])
			if x > lon {
				n++
			}
		}
	}
	return n
}
