package tui

import (
	"fmt"
	"strings"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/format"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/palette"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/stats"
)

type rankRow struct {
	code string // empty when the external key matched no region
	name string
	n    int
	pct  float64
}

// ranking maps the metric ranking back onto region codes so the cursor and
// the map selection stay the same value.
func (m Model) ranking() []rankRow {
	entries := m.stats.Ranking()
	out := make([]rankRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, rankRow{
			code: m.keyToCode[e.Name],
			name: format.DisplayName(e.Name),
			n:    e.Cases,
			pct:  e.Percent,
		})
	}
	return out
}

func (m Model) caseLabel() string {
	if m.caps.IPSMode {
		return "atenciones"
	}
	return "casos"
}

// renderPanel builds the right-hand detail column.
func (m Model) renderPanel(width, height int) string {
	inner := width - 4 // box border and padding
	if inner < 16 {
		inner = 16
	}
	var sections []string

	if m.sel.Active() {
		sections = append(sections, m.renderRegionDetail(inner)...)
	} else {
		sections = append(sections, m.renderTotals(inner)...)
	}
	if m.caps.ShowEstablishments && len(m.stats.Establishments) > 0 {
		sections = append(sections, m.renderEstablishments(inner))
	}
	if m.caps.ShowRiskTiers && len(m.stats.RiskTiers) > 0 {
		sections = append(sections, m.renderRiskTiers(inner))
	}
	sections = append(sections, m.renderRanking(inner, height))

	body := strings.Join(sections, "\n\n")
	return boxStyle.Width(width - 2).MaxHeight(height).Render(body)
}

func (m Model) renderTotals(w int) []string {
	title := titleStyle.Render("Panorama nacional")
	kpis := []string{
		fmt.Sprintf("%s  %s", kpiStyle.Render(fmt.Sprintf("%d", m.stats.TotalCases())), dimStyle.Render(m.caseLabel())),
		dimStyle.Render(fmt.Sprintf("%d departamentos con datos", len(m.stats.Names))),
	}
	return []string{title + "\n" + strings.Join(kpis, "\n")}
}

func (m Model) renderRegionDetail(w int) []string {
	r := m.geo.ByCode(m.sel.Code())
	if r == nil {
		return nil
	}
	title := titleStyle.Render(format.DisplayName(r.Name))
	rec, ok := m.metricsFor(r.Code)
	if !ok {
		return []string{title + "\n" + dimStyle.Render("sin datos")}
	}
	kpis := strings.Join([]string{
		fmt.Sprintf("%-11s %s", m.caseLabel(), kpiStyle.Render(fmt.Sprintf("%d", rec.Cases))),
		fmt.Sprintf("%-11s %s", "costo", kpiStyle.Render(format.Currency(rec.Cost))),
		fmt.Sprintf("%-11s %s", "pacientes", kpiStyle.Render(fmt.Sprintf("%d", rec.Patients))),
	}, "\n")
	out := []string{title + "\n" + kpis}

	if m.caps.ShowCharts {
		key := m.matchKey[r.Code]
		rows := m.stats.BreakdownRows(key)
		if len(rows) > 0 {
			out = append(out, m.renderBreakdownBars(rows, w), m.renderDistribution(rows, w))
		}
	}
	return out
}

// renderBreakdownBars draws the horizontal bar chart of sub-group counts.
func (m Model) renderBreakdownBars(rows []stats.BreakdownRow, w int) string {
	maxN := rows[0].Count
	for _, r := range rows {
		if r.Count > maxN {
			maxN = r.Count
		}
	}
	if maxN == 0 {
		maxN = 1
	}
	barW := w - 14
	if barW < 6 {
		barW = 6
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Diagnósticos"))
	limit := mini(len(rows), 6)
	for i := 0; i < limit; i++ {
		r := rows[i]
		n := 0
		if maxN > 0 {
			n = r.Count * barW / maxN
		}
		if n < 1 {
			n = 1
		}
		hex := palette.HeatHex(float64(r.Count) / float64(maxN))
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(strings.Repeat("█", n))
		b.WriteString(fmt.Sprintf("\n%-10.10s %s %d", r.Label, bar, r.Count))
	}
	return b.String()
}

// renderDistribution is the donut stand-in: a dot-list of shares.
func (m Model) renderDistribution(rows []stats.BreakdownRow, w int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Distribución"))
	limit := mini(len(rows), 6)
	for i := 0; i < limit; i++ {
		r := rows[i]
		t := 1.0
		if limit > 1 {
			t = 1 - float64(i)/float64(limit-1)
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.HeatHex(t))).Render("●")
		b.WriteString(fmt.Sprintf("\n%s %-14.14s %5.1f%%", dot, r.Label, r.Percent))
	}
	return b.String()
}

func (m Model) renderEstablishments(w int) string {
	cols := []table.Column{
		{Title: "IPS", Width: maxi(w-18, 12)},
		{Title: m.caseLabel(), Width: 7},
		{Title: "%", Width: 6},
	}
	rows := make([]table.Row, 0, len(m.stats.Establishments))
	for _, e := range m.stats.Establishments {
		rows = append(rows, table.Row{e.Name, fmt.Sprintf("%d", e.Count), e.Percent})
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(mini(len(rows), 6)),
	)
	return titleStyle.Render("Instituciones") + "\n" + t.View()
}

func (m Model) renderRiskTiers(w int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Niveles de riesgo"))
	for i, tier := range m.stats.RiskTiers {
		if i >= 9 {
			break
		}
		b.WriteString(fmt.Sprintf("\n%s %-14.14s %5d  %s",
			dimStyle.Render(fmt.Sprintf("[%d]", i+1)), tier.Label, tier.Count, tier.Percent))
	}
	return b.String()
}

// renderRanking lists departments by descending case count, the selection
// cursor tracking the map selection.
func (m Model) renderRanking(w, height int) string {
	ranking := m.ranking()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ranking"))
	if len(ranking) == 0 {
		b.WriteString("\n" + dimStyle.Render("sin datos"))
		return b.String()
	}
	limit := mini(len(ranking), maxi(4, height-20))
	maxN := ranking[0].n
	for i := 0; i < limit; i++ {
		r := ranking[i]
		cursor := "  "
		if r.code != "" && r.code == m.sel.Code() {
			cursor = titleStyle.Render("▸ ")
		}
		barW := 8
		n := 0
		if maxN > 0 {
			n = r.n * barW / maxN
		}
		if n < 1 {
			n = 1
		}
		t := 0.0
		if maxN > 0 {
			t = float64(r.n) / float64(maxN)
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.HeatHex(t))).Render(strings.Repeat("▰", n))
		b.WriteString(fmt.Sprintf("\n%s%-14.14s %s %4d %5.1f%%", cursor, r.name, bar, r.n, r.pct))
	}
	return b.String()
}
