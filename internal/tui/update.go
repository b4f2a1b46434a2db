package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/format"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/match"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/viewport"
)

// animMsg drives the entrance animation; the tick chain stops by itself at
// full intensity and dies with the program on quit.
type animMsg struct{}

func animTick() tea.Cmd {
	return tea.Tick(40*time.Millisecond, func(time.Time) tea.Msg { return animMsg{} })
}

func (m Model) Init() tea.Cmd { return animTick() }

// layout computes the map area geometry shared by Update and View:
// map size in cells, map origin, and the detail panel width.
func (m Model) layout() (mapW, mapH, mapX, mapY, panelW int) {
	headerHeight := 1
	footerHeight := 2
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := maxi(20, m.width)
	if m.showPanel {
		panelW = 42
		if panelW > contentWidth/2 {
			panelW = contentWidth / 2
		}
	}
	mapW = contentWidth - panelW
	if panelW > 0 {
		mapW-- // gutter
	}
	if mapW < 10 {
		mapW = 10
	}
	return mapW, contentHeight, 0, headerHeight, panelW
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case animMsg:
		m.animT += 0.1
		if m.animT < 1 {
			return m, animTick()
		}
		m.animT = 1

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mapW, mapH, _, _, _ := m.layout()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "+", "=":
		m.zoomAtCenter(1, mapW, mapH)
	case "-", "_":
		m.zoomAtCenter(-1, mapW, mapH)
	case "left":
		m.view.Pan(-4, 0)
	case "right":
		m.view.Pan(4, 0)
	case "up":
		m.view.Pan(0, -4)
	case "down":
		m.view.Pan(0, 4)
	case "r":
		m.view.Reset()
		m.status = "vista restablecida"
	case "f":
		if m.sel.Active() {
			if r := m.geo.ByCode(m.sel.Code()); r != nil {
				box := m.regionCanvasBBox(r, mapW, mapH)
				m.view.FitBounds(box, float64(mapW*2), float64(mapH*4))
				m.status = fmt.Sprintf("enfocado: %s", format.DisplayName(r.Name))
			}
		}
	case "tab":
		m.showPanel = !m.showPanel
	case "h":
		m.helpVisible = !m.helpVisible
	case "/":
		m.searching = true
		m.search.SetValue("")
		m.status = "buscar departamento"
		return m, m.search.Focus()
	case "esc":
		m.clearSelection()
	case "j", "k":
		m.moveRanking(msg.String() == "j")
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if m.caps.ShowRiskTiers {
			idx := int(msg.String()[0] - '1')
			if idx < len(m.stats.RiskTiers) {
				tier := m.stats.RiskTiers[idx]
				m.status = fmt.Sprintf("riesgo: %s (%d)", tier.Label, tier.Count)
				if m.onTierSelect != nil {
					m.onTierSelect(tier.Label)
				}
			}
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.status = "búsqueda cancelada"
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		names := make([]string, len(m.geo.Regions))
		for i, r := range m.geo.Regions {
			names[i] = r.Name
		}
		hits := match.Search(m.search.Value(), names)
		if len(hits) == 0 {
			m.status = "sin resultados"
			return m, nil
		}
		r := &m.geo.Regions[hits[0]]
		m.selectRegion(r.Code)
		mapW, mapH, _, _, _ := m.layout()
		m.view.FitBounds(m.regionCanvasBBox(r, mapW, mapH), float64(mapW*2), float64(mapH*4))
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	mapW, mapH, mapX, mapY, _ := m.layout()
	cellX := msg.X - mapX
	cellY := msg.Y - mapY
	inMap := cellX >= 0 && cellX < mapW && cellY >= 0 && cellY < mapH

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if inMap {
			dir := 1
			if msg.Button == tea.MouseButtonWheelDown {
				dir = -1
			}
			m.view.ZoomAt(float64(cellX*2), float64(cellY*4), dir, viewport.WheelStep)
			m.status = fmt.Sprintf("zoom: %.2fx", m.view.Scale)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inMap {
			m.pressed = true
			m.dragged = false
			m.dragX, m.dragY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if m.pressed {
			dx := msg.X - m.dragX
			dy := msg.Y - m.dragY
			if dx != 0 || dy != 0 {
				m.view.Pan(float64(dx*2), float64(dy*4))
				m.dragged = true
				m.dragX, m.dragY = msg.X, msg.Y
			}
			return m, nil
		}
		m.hovering = inMap
		if !inMap {
			m.hoverCode = ""
		}
		if inMap {
			m.hoverX, m.hoverY = cellX, cellY
			if r := m.regionAt(cellX, cellY, mapW, mapH); r != nil {
				m.hoverCode = r.Code
			} else {
				m.hoverCode = ""
			}
		}
	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft || !m.pressed {
			break
		}
		m.pressed = false
		if m.dragged {
			break
		}
		if !inMap {
			break
		}
		if r := m.regionAt(cellX, cellY, mapW, mapH); r != nil {
			m.selectRegion(r.Code)
		} else {
			m.clearSelection()
		}
	}
	return m, nil
}

func (m *Model) zoomAtCenter(dir int, mapW, mapH int) {
	m.view.ZoomAt(float64(mapW*2)/2, float64(mapH*4)/2, dir, viewport.ButtonStep)
	m.status = fmt.Sprintf("zoom: %.2fx", m.view.Scale)
}

// selectRegion drives the selection state machine from a click or a ranking
// move and notifies the parent with the external key.
func (m *Model) selectRegion(code string) {
	m.sel.Toggle(code)
	if !m.sel.Active() {
		m.status = "selección limpiada"
		if m.onSelect != nil {
			m.onSelect("")
		}
		return
	}
	if r := m.geo.ByCode(code); r != nil {
		m.status = fmt.Sprintf("seleccionado: %s", format.DisplayName(r.Name))
	}
	m.log.Debug("region selected", zap.String("code", code))
	if m.onSelect != nil {
		m.onSelect(m.matchKey[code])
	}
}

func (m *Model) clearSelection() {
	if !m.sel.Active() {
		return
	}
	m.sel.Clear()
	m.status = "selección limpiada"
	if m.onSelect != nil {
		m.onSelect("")
	}
}

// moveRanking steps the selection through the ranking list (j down, k up).
func (m *Model) moveRanking(down bool) {
	ranking := m.ranking()
	if len(ranking) == 0 {
		return
	}
	cur := -1
	if m.sel.Active() {
		for i, e := range ranking {
			if e.code == m.sel.Code() {
				cur = i
				break
			}
		}
	}
	var next int
	switch {
	case cur == -1:
		next = 0
	case down:
		next = mini(cur+1, len(ranking)-1)
	default:
		next = maxi(cur-1, 0)
	}
	if ranking[next].code != "" && ranking[next].code != m.sel.Code() {
		m.selectRegion(ranking[next].code)
	}
}
