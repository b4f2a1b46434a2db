package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	mapW, mapH, _, _, panelW := m.layout()
	contentWidth := maxi(20, m.width)

	header := titleStyle.Render(" oncomapa ─ estadísticas de cáncer por departamento ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	ascii := m.renderMap(mapW, mapH)
	mapView := lipgloss.NewStyle().Width(mapW).Height(mapH).Render(ascii)

	body := mapView
	if panelW > 0 {
		panel := m.renderPanel(panelW, mapH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, mapView, " ", panel)
	}

	// search box floats over the body while active
	if m.searching {
		box := boxStyle.Render("buscar: " + m.search.View())
		body = overlayTop(body, lipgloss.Place(contentWidth, 3, lipgloss.Center, lipgloss.Top, box))
	}

	status := dimStyle.Render(" " + m.status + " ")
	zoom := dimStyle.Render(fmt.Sprintf(" %.2fx ", m.view.Scale))
	footer := lipgloss.NewStyle().Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, status, zoom, m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"rueda/± zoom",
		"arrastrar/↑↓←→ mover",
		"clic seleccionar",
		"j/k ranking",
		"f enfocar",
		"/ buscar",
		"r reiniciar",
		"Tab panel",
		"q salir",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

// overlayTop splices the first non-empty lines of over onto the top of base.
func overlayTop(base, over string) string {
	bl := strings.Split(base, "\n")
	ol := strings.Split(over, "\n")
	for i := 0; i < len(ol) && i < len(bl); i++ {
		if strings.TrimSpace(ol[i]) != "" {
			bl[i] = ol[i]
		}
	}
	return strings.Join(bl, "\n")
}
