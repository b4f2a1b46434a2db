package match

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match returns the first external key identifying the same region as the
// geographic display name, or ok=false when none qualifies.
//
// A key qualifies when its normalized form equals the normalized name, or is
// a substring of it, or contains it. The three conditions are deliberately a
// single disjunction with no ranking: ties go to whichever qualifying key
// the caller supplied first, so key order matters.
func Match(geoName string, keys []string) (string, bool) {
	ng := Normalize(geoName)
	if ng == "" {
		return "", false
	}
	for _, k := range keys {
		nk := Normalize(k)
		if nk == "" {
			continue
		}
		if nk == ng || strings.Contains(ng, nk) || strings.Contains(nk, ng) {
			return k, true
		}
	}
	return "", false
}

// Search fuzzy-ranks names against a query for the interactive search box
// and returns their indices, best first. An empty query matches nothing.
func Search(query string, names []string) []int {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	folded := make([]string, len(names))
	for i, n := range names {
		folded[i] = Normalize(n)
	}
	results := fuzzy.Find(Normalize(query), folded)
	idx := make([]int, 0, len(results))
	for _, r := range results {
		idx = append(idx, r.Index)
	}
	return idx
}
