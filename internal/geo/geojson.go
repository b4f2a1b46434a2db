package geo

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed data/departments.geojson
var departmentsGeoJSON []byte

// Load parses the bundled department geometry. Called once at startup; the
// returned dataset is treated as read-only from then on.
func Load() (*Dataset, error) {
	return FromGeoJSON(departmentsGeoJSON)
}

// FromGeoJSON parses a FeatureCollection of Polygon/MultiPolygon features
// carrying "codigo" and "nombre" properties into a Dataset. Features with
// degenerate geometry (no outer ring, fewer than 3 vertices) are skipped.
func FromGeoJSON(data []byte) (*Dataset, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse geometry: %w", err)
	}
	t, _ := raw["type"].(string)
	if t != "FeatureCollection" {
		return nil, errors.New("geometry: expected FeatureCollection")
	}
	features, _ := raw["features"].([]any)

	parsePoint := func(v any) (pt [2]float64, ok bool) {
		a, ok := v.([]any)
		if !ok || len(a) < 2 {
			return pt, false
		}
		lon, lok := a[0].(float64)
		lat, aok := a[1].(float64)
		if !lok || !aok {
			return pt, false
		}
		return [2]float64{lon, lat}, true
	}
	parseRing := func(v any) (ring [][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ring = append(ring, pt)
			}
		}
		return ring, true
	}
	parsePolygon := func(v any) (poly [][][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, rv := range arr {
			if ring, ok := parseRing(rv); ok && len(ring) >= 3 {
				poly = append(poly, ring)
			}
		}
		return poly, len(poly) > 0
	}

	d := &Dataset{}
	first := true
	for _, f := range features {
		fm, ok := f.(map[string]any)
		if !ok {
			continue
		}
		props, _ := fm["properties"].(map[string]any)
		code, _ := props["codigo"].(string)
		name, _ := props["nombre"].(string)
		g, _ := fm["geometry"].(map[string]any)
		gt, _ := g["type"].(string)
		coords := g["coordinates"]

		var polys [][][][2]float64
		switch gt {
		case "Polygon":
			if poly, ok := parsePolygon(coords); ok {
				polys = append(polys, poly)
			}
		case "MultiPolygon":
			arr, ok := coords.([]any)
			if !ok {
				continue
			}
			for _, pv := range arr {
				if poly, ok := parsePolygon(pv); ok {
					polys = append(polys, poly)
				}
			}
		default:
			continue
		}
		if len(polys) == 0 {
			continue
		}

		r := Region{Code: code, Name: name, Polygons: polys}
		rf := true
		for _, poly := range polys {
			for _, ring := range poly {
				for _, pt := range ring {
					if rf {
						r.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
						rf = false
					} else {
						r.BBox.Expand(pt[0], pt[1])
					}
					if first {
						d.BBox = r.BBox
						first = false
					} else {
						d.BBox.Expand(pt[0], pt[1])
					}
				}
			}
		}
		d.Regions = append(d.Regions, r)
	}
	if len(d.Regions) == 0 {
		return nil, errors.New("geometry: no usable features")
	}
	return d, nil
}
