package tui

import (
	textinput "github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/geo"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/match"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/stats"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/viewport"
)

// Capabilities selects which detail-panel widgets render. One parameterized
// component covers what used to be separately maintained variants.
type Capabilities struct {
	ShowEstablishments bool
	ShowRiskTiers      bool
	ShowCharts         bool
	IPSMode            bool
}

// Options wires the component into a parent program.
type Options struct {
	Geo   *geo.Dataset
	Stats *stats.Dataset
	Caps  Capabilities

	// OnSelect receives the external key of the clicked region, or "" when
	// the selection is cleared. OnTierSelect receives a risk-tier label the
	// same way. Both optional.
	OnSelect     func(string)
	OnTierSelect func(string)

	Logger *zap.Logger
}

type Model struct {
	width  int
	height int

	geo   *geo.Dataset
	stats *stats.Dataset
	caps  Capabilities

	// region code -> external metrics key, resolved once per dataset;
	// missing entry means the region renders unstyled
	matchKey  map[string]string
	keyToCode map[string]string

	view viewport.Transform
	sel  Selection

	status string

	// hover state
	hovering  bool
	hoverCode string
	hoverX    int
	hoverY    int

	// drag gesture
	pressed bool
	dragged bool
	dragX   int
	dragY   int

	// search box
	searching bool
	search    textinput.Model

	// entrance animation progress in [0,1]
	animT float64

	helpVisible bool
	showPanel   bool

	onSelect     func(string)
	onTierSelect func(string)
	log          *zap.Logger
}

// New builds the component and resolves the name-match table up front.
func New(opts Options) Model {
	m := Model{
		geo:          opts.Geo,
		stats:        opts.Stats,
		caps:         opts.Caps,
		view:         viewport.New(),
		status:       "oncomapa listo",
		helpVisible:  true,
		showPanel:    true,
		matchKey:     map[string]string{},
		keyToCode:    map[string]string{},
		onSelect:     opts.OnSelect,
		onTierSelect: opts.OnTierSelect,
		log:          opts.Logger,
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.stats == nil {
		m.stats = &stats.Dataset{ByName: map[string]stats.Metrics{}}
	}
	for _, r := range m.geo.Regions {
		if key, ok := match.Match(r.Name, m.stats.Names); ok {
			m.matchKey[r.Code] = key
			m.keyToCode[key] = r.Code
		}
	}
	m.log.Debug("match table resolved",
		zap.Int("regions", len(m.geo.Regions)),
		zap.Int("matched", len(m.matchKey)))

	ti := textinput.New()
	ti.Placeholder = "departamento…"
	ti.CharLimit = 40
	ti.Width = 28
	m.search = ti
	return m
}

// metricsFor returns the metric record for a region, ok=false when the
// region matched no external key.
func (m Model) metricsFor(code string) (stats.Metrics, bool) {
	key, ok := m.matchKey[code]
	if !ok {
		return stats.Metrics{}, false
	}
	rec, ok := m.stats.ByName[key]
	return rec, ok
}

// intensityFor is the normalized heat value for a region, entrance
// animation applied.
func (m Model) intensityFor(code string) float64 {
	key, ok := m.matchKey[code]
	if !ok {
		return 0
	}
	return m.stats.Intensity(key) * m.animT
}
