package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "departamentos": {
    "Bogota":    {"casos": 120, "pacientes": 95, "costo": 583000000, "diagnosticos": {"Mama": 40, "Pulmón": 30, "Gástrico": 50}},
    "Antioquia": {"casos": 90,  "pacientes": 80, "costo": 410000000, "diagnosticos": {"Mama": 45, "Pulmón": 45}},
    "Nariño":    {"casos": 30,  "pacientes": 28, "costo":  99000000, "diagnosticos": {}}
  },
  "ips": [
    {"nombre": "Hospital San Ignacio", "casos": 55, "porcentaje": "22.9%"},
    {"nombre": "Clínica del Norte",    "casos": 31, "porcentaje": "12.9%"}
  ],
  "riesgos": [
    {"etiqueta": "Alto",  "casos": 60, "porcentaje": "25.0%"},
    {"etiqueta": "Medio", "casos": 96, "porcentaje": "40.0%"}
  ]
}`

func TestParsePreservesKeyOrder(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bogota", "Antioquia", "Nariño"}, d.Names)
}

func TestParseRows(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, d.Establishments, 2)
	assert.Equal(t, "Hospital San Ignacio", d.Establishments[0].Name)
	assert.Equal(t, "22.9%", d.Establishments[0].Percent)
	require.Len(t, d.RiskTiers, 2)
	assert.Equal(t, "Alto", d.RiskTiers[0].Label)
}

func TestMaxAndTotal(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, 120, d.MaxCases())
	assert.Equal(t, 240, d.TotalCases())
}

func TestIntensity(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.Intensity("Bogota"))
	assert.Equal(t, 0.25, d.Intensity("Nariño"))
	assert.Equal(t, 0.0, d.Intensity("Vichada"))
}

func TestIntensityZeroMax(t *testing.T) {
	d := &Dataset{
		Names:  []string{"Bogota"},
		ByName: map[string]Metrics{"Bogota": {}},
	}
	assert.Equal(t, 0.0, d.Intensity("Bogota"))
}

func TestRankingOrder(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	r := d.Ranking()
	require.Len(t, r, 3)
	assert.Equal(t, "Bogota", r[0].Name)
	assert.Equal(t, "Antioquia", r[1].Name)
	assert.Equal(t, "Nariño", r[2].Name)
	assert.Equal(t, 50.0, r[0].Percent)
}

// Independently derived percentages must never sum past 100. Six equal
// parts is the classic trap: round-half-up would give 16.7*6 = 100.2.
func TestPercentagesSumAtMost100(t *testing.T) {
	d := &Dataset{
		Names: []string{"X"},
		ByName: map[string]Metrics{"X": {
			Cases: 30,
			Breakdown: map[string]int{
				"a": 5, "b": 5, "c": 5, "d": 5, "e": 5, "f": 5,
			},
		}},
	}
	rows := d.BreakdownRows("X")
	require.Len(t, rows, 6)
	sum := 0.0
	for _, r := range rows {
		assert.Equal(t, 16.6, r.Percent)
		sum += r.Percent
	}
	assert.LessOrEqual(t, sum, 100.0)

	// ranking column obeys the same bound
	thirds := &Dataset{
		Names: []string{"a", "b", "c"},
		ByName: map[string]Metrics{
			"a": {Cases: 1}, "b": {Cases: 1}, "c": {Cases: 1},
		},
	}
	sum = 0
	for _, e := range thirds.Ranking() {
		sum += e.Percent
	}
	assert.LessOrEqual(t, sum, 100.0)
}

func TestBreakdownRowsOrder(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	rows := d.BreakdownRows("Bogota")
	require.Len(t, rows, 3)
	assert.Equal(t, "Gástrico", rows[0].Label)
	assert.Equal(t, "Mama", rows[1].Label)
	assert.Equal(t, "Pulmón", rows[2].Label)

	// ties break alphabetically
	rows = d.BreakdownRows("Antioquia")
	require.Len(t, rows, 2)
	assert.Equal(t, "Mama", rows[0].Label)
}

func TestBreakdownRowsMissing(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Nil(t, d.BreakdownRows("Nariño"))
	assert.Nil(t, d.BreakdownRows("nope"))
}

func TestEmptyDataset(t *testing.T) {
	d, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, d.Empty())
	assert.Equal(t, 0, d.MaxCases())
	assert.Empty(t, d.Ranking())

	var nilDS *Dataset
	assert.True(t, nilDS.Empty())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte(`{"departamentos": [1,2,3]`))
	assert.Error(t, err)
}
