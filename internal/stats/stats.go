// Package stats models the pre-aggregated metrics the parent application
// hands to the map: per-department totals plus optional establishment and
// risk-tier tables for the detail panel. Nothing here fetches or computes
// aggregates; it only reshapes what was supplied for display.
package stats

import (
	"math"
	"sort"
)

// Metrics is the aggregate record for one externally-keyed region name.
type Metrics struct {
	Cases     int            `json:"casos"`
	Patients  int            `json:"pacientes"`
	Cost      int64          `json:"costo"`
	Breakdown map[string]int `json:"diagnosticos"`
}

// Row is one establishment (IPS) line for the detail panel. The percentage
// arrives pre-formatted from the parent application.
type Row struct {
	Name    string `json:"nombre"`
	Count   int    `json:"casos"`
	Percent string `json:"porcentaje"`
}

// TierRow is one risk-tier line, clickable independently of the map.
type TierRow struct {
	Label   string `json:"etiqueta"`
	Count   int    `json:"casos"`
	Percent string `json:"porcentaje"`
}

// Dataset is one render's worth of supplied metrics. Names preserves the
// document order of the department mapping; name matching ties are resolved
// by that order, so it must survive parsing.
type Dataset struct {
	Names          []string
	ByName         map[string]Metrics
	Establishments []Row
	RiskTiers      []TierRow
}

// Empty reports whether there is nothing to color the map with.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Names) == 0
}

// MaxCases returns the largest case count across all records, 0 when empty.
func (d *Dataset) MaxCases() int {
	max := 0
	for _, m := range d.ByName {
		if m.Cases > max {
			max = m.Cases
		}
	}
	return max
}

// TotalCases sums case counts across all records.
func (d *Dataset) TotalCases() int {
	total := 0
	for _, m := range d.ByName {
		total += m.Cases
	}
	return total
}

// Intensity returns the normalized heat value for an external key. A zero
// maximum or unknown key yields 0, which renders as the no-data base color.
func (d *Dataset) Intensity(name string) float64 {
	max := d.MaxCases()
	if max == 0 {
		return 0
	}
	m, ok := d.ByName[name]
	if !ok {
		return 0
	}
	return float64(m.Cases) / float64(max)
}

// RankEntry is one row of the ranking list.
type RankEntry struct {
	Name    string
	Cases   int
	Percent float64
}

// Ranking returns all records ordered by descending case count; ties keep
// document order. Percent is each row's share of the total, truncated to
// one decimal so the column never sums past 100.
func (d *Dataset) Ranking() []RankEntry {
	total := d.TotalCases()
	out := make([]RankEntry, 0, len(d.Names))
	for _, n := range d.Names {
		m := d.ByName[n]
		out = append(out, RankEntry{Name: n, Cases: m.Cases, Percent: share(m.Cases, total)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cases > out[j].Cases })
	return out
}

// BreakdownRow is one sub-group line of a region's breakdown chart.
type BreakdownRow struct {
	Label   string
	Count   int
	Percent float64
}

// BreakdownRows returns a region's sub-group counts ordered by descending
// count (ties alphabetical), with percentages of the region's breakdown
// total truncated to one decimal.
func (d *Dataset) BreakdownRows(name string) []BreakdownRow {
	m, ok := d.ByName[name]
	if !ok || len(m.Breakdown) == 0 {
		return nil
	}
	total := 0
	for _, c := range m.Breakdown {
		total += c
	}
	out := make([]BreakdownRow, 0, len(m.Breakdown))
	for label, c := range m.Breakdown {
		out = append(out, BreakdownRow{Label: label, Count: c, Percent: share(c, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// share truncates part/total to one decimal place. Truncation (not
// round-half-up) keeps independently derived rows from summing past 100%.
func share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Floor(float64(part)/float64(total)*1000) / 10
}
