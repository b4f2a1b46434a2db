package geo

// BBox is an axis-aligned bounding box in lon/lat.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has positive area.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Expand grows the box to include the point.
func (b *BBox) Expand(lon, lat float64) {
	if lon < b.MinX {
		b.MinX = lon
	}
	if lat < b.MinY {
		b.MinY = lat
	}
	if lon > b.MaxX {
		b.MaxX = lon
	}
	if lat > b.MaxY {
		b.MaxY = lat
	}
}

// Region is one first-level administrative division with its boundary rings.
// Polygons holds one or more polygons; within each polygon the first ring is
// the outer boundary and any following rings are holes.
type Region struct {
	Code     string
	Name     string
	Polygons [][][][2]float64
	BBox     BBox
}

// Dataset is the full reference geometry, loaded once and never mutated.
type Dataset struct {
	Regions []Region
	BBox    BBox
}

// ByCode returns the region with the given canonical code, or nil.
func (d *Dataset) ByCode(code string) *Region {
	for i := range d.Regions {
		if d.Regions[i].Code == code {
			return &d.Regions[i]
		}
	}
	return nil
}
