// Package match resolves the free-text department names used by external
// datasets against the canonical names carried by the bundled geometry.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	// trailing capital-district qualifier: ", D.C.", " DC", ",D. C." ...
	capitalDistrict = regexp.MustCompile(`[\s,]+D\s*\.?\s*C\s*\.?\s*$`)
)

const archipelagoPrefix = "ARCHIPIELAGO DE "

// Normalize folds a department name to its canonical comparison form:
// upper-case, no diacritics, no capital-district suffix, no archipelago
// qualifier, and the San Andrés multi-part legal name collapsed to its short
// form. Idempotent.
func Normalize(s string) string {
	s = strings.ToUpper(s)
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}
	s = capitalDistrict.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, archipelagoPrefix)
	if strings.HasPrefix(s, "SAN ANDRES") {
		return "SAN ANDRES"
	}
	return strings.TrimSpace(s)
}
