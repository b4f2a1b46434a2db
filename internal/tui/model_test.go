package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/geo"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/stats"
)

const testGeoJSON = `{"type":"FeatureCollection","features":[
  {"type":"Feature","properties":{"codigo":"11","nombre":"Bogotá, D.C."},
   "geometry":{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
  {"type":"Feature","properties":{"codigo":"05","nombre":"Antioquia"},
   "geometry":{"type":"Polygon","coordinates":[[[10,0],[20,0],[20,10],[10,10],[10,0]]]}}
]}`

const testMetrics = `{
  "departamentos": {
    "Bogota":    {"casos": 100, "pacientes": 80, "costo": 1000, "diagnosticos": {"Mama": 60, "Pulmón": 40}},
    "Antioquia": {"casos": 50,  "pacientes": 45, "costo":  500}
  },
  "riesgos": [{"etiqueta": "Alto", "casos": 30, "porcentaje": "20.0%"}]
}`

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	g, err := geo.FromGeoJSON([]byte(testGeoJSON))
	require.NoError(t, err)
	s, err := stats.Parse([]byte(testMetrics))
	require.NoError(t, err)
	opts.Geo = g
	opts.Stats = s
	return New(opts)
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewResolvesMatchTable(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Equal(t, "Bogota", m.matchKey["11"])
	assert.Equal(t, "Antioquia", m.matchKey["05"])
	assert.Equal(t, "11", m.keyToCode["Bogota"])

	rec, ok := m.metricsFor("11")
	require.True(t, ok)
	assert.Equal(t, 100, rec.Cases)

	_, ok = m.metricsFor("99")
	assert.False(t, ok)
}

func TestEntranceAnimationRampsIntensity(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Equal(t, 0.0, m.intensityFor("11"))
	for i := 0; i < 12; i++ {
		m = update(m, animMsg{})
	}
	assert.Equal(t, 1.0, m.animT)
	assert.Equal(t, 1.0, m.intensityFor("11"))
	assert.Equal(t, 0.5, m.intensityFor("05"))
	assert.Equal(t, 0.0, m.intensityFor("99"))
}

func TestSelectNotifiesParent(t *testing.T) {
	var got []string
	m := newTestModel(t, Options{
		OnSelect: func(k string) { got = append(got, k) },
	})
	m.selectRegion("11")
	assert.True(t, m.sel.Active())
	assert.Equal(t, []string{"Bogota"}, got)

	// clicking the selected region again clears
	m.selectRegion("11")
	assert.False(t, m.sel.Active())
	assert.Equal(t, []string{"Bogota", ""}, got)
}

func TestEscClearsSelection(t *testing.T) {
	var got []string
	m := newTestModel(t, Options{
		OnSelect: func(k string) { got = append(got, k) },
	})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m.selectRegion("05")
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.sel.Active())
	assert.Equal(t, []string{"Antioquia", ""}, got)

	// esc with nothing selected stays quiet
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"Antioquia", ""}, got)
}

func TestRankingNavigationFollowsCases(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, "11", m.sel.Code(), "j lands on the top-ranked region")
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, "05", m.sel.Code())
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, "05", m.sel.Code(), "bottom of the list clamps")
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, "11", m.sel.Code())
}

func TestTierKeysRequireCapability(t *testing.T) {
	var tiers []string
	opts := Options{OnTierSelect: func(l string) { tiers = append(tiers, l) }}
	m := newTestModel(t, opts)
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	assert.Empty(t, tiers, "tier keys inert without the capability")

	opts.Caps = Capabilities{ShowRiskTiers: true}
	m = newTestModel(t, opts)
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	assert.Equal(t, []string{"Alto"}, tiers)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	assert.Len(t, tiers, 1, "out-of-range tier key ignored")
}

func TestZoomKeysClampAndReset(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	for i := 0; i < 20; i++ {
		m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	}
	assert.Equal(t, 6.0, m.view.Scale)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, 1.0, m.view.Scale)
	assert.Zero(t, m.view.TX)
}

func TestMouseClickSelectsRegion(t *testing.T) {
	var got []string
	m := newTestModel(t, Options{
		OnSelect: func(k string) { got = append(got, k) },
	})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	// left half of the map shows the western region (Bogotá square)
	mapW, mapH, mapX, mapY, _ := m.layout()
	x := mapX + mapW/4
	y := mapY + mapH/2
	m = update(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, "11", m.sel.Code())
	assert.Equal(t, []string{"Bogota"}, got)
}

func TestDragPansWithoutSelecting(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(m, tea.MouseMsg{X: 25, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(m, tea.MouseMsg{X: 25, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, m.sel.Active())
	assert.Equal(t, 10.0, m.view.TX)
	assert.Equal(t, 8.0, m.view.TY)
}

func TestWheelZoomsAtCursor(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 1.25, m.view.Scale)
	m = update(m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1.0, m.view.Scale)
}

func TestViewRendersAllStates(t *testing.T) {
	m := newTestModel(t, Options{Caps: Capabilities{
		ShowCharts: true, ShowEstablishments: true, ShowRiskTiers: true,
	}})
	assert.Equal(t, "", m.View(), "no size yet")

	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	for i := 0; i < 12; i++ {
		m = update(m, animMsg{})
	}
	assert.NotEmpty(t, m.View())

	m.selectRegion("11")
	out := m.View()
	assert.Contains(t, out, "Bogotá, D.C.")
	assert.Contains(t, out, "Ranking")

	// hover tooltip path
	mapW, mapH, mapX, mapY, _ := m.layout()
	m = update(m, tea.MouseMsg{X: mapX + mapW/4, Y: mapY + mapH/2, Action: tea.MouseActionMotion})
	assert.NotEmpty(t, m.View())
}
