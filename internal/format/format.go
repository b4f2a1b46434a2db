// Package format holds the display-side formatting helpers: Colombian peso
// amounts, percentage strings, and department display names.
package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/match"
)

var (
	esCO    = language.MustParse("es-CO")
	printer = message.NewPrinter(esCO)
	titler  = cases.Title(esCO)
)

// Currency renders a peso amount with locale grouping and no decimals.
func Currency(v int64) string {
	return printer.Sprintf("$ %v", number.Decimal(v))
}

// Percent renders part/total as a one-decimal percentage. The value is
// truncated, not rounded, so a table of independently formatted rows never
// sums past 100%. A zero total renders as 0.0%.
func Percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	pct := math.Floor(float64(part)/float64(total)*1000) / 10
	return fmt.Sprintf("%.1f%%", pct)
}

// displayOverrides restores accents and official punctuation that external
// keys tend to drop, keyed by normalized form.
var displayOverrides = map[string]string{
	"BOGOTA":             "Bogotá, D.C.",
	"SAN ANDRES":         "San Andrés",
	"ATLANTICO":          "Atlántico",
	"BOLIVAR":            "Bolívar",
	"BOYACA":             "Boyacá",
	"CAQUETA":            "Caquetá",
	"CORDOBA":            "Córdoba",
	"CHOCO":              "Chocó",
	"GUAINIA":            "Guainía",
	"NARINO":             "Nariño",
	"QUINDIO":            "Quindío",
	"VAUPES":             "Vaupés",
	"NORTE DE SANTANDER": "Norte de Santander",
	"VALLE DEL CAUCA":    "Valle del Cauca",
	"LA GUAJIRA":         "La Guajira",
}

// particles stay lowercase inside a title-cased name.
var particles = map[string]bool{"de": true, "del": true, "la": true, "y": true}

// DisplayName renders an external key or canonical name for the UI: known
// names map to their accented official form, anything else is title-cased
// with Spanish particles kept lowercase.
func DisplayName(name string) string {
	if out, ok := displayOverrides[match.Normalize(name)]; ok {
		return out
	}
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		if i > 0 && particles[w] {
			continue
		}
		words[i] = titler.String(w)
	}
	return strings.Join(words, " ")
}
