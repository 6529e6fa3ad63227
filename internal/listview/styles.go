package listview

import (
	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorMuted  = lipgloss.Color("#6C757D")
	colorBorder = lipgloss.Color("#4A90E2")
	colorTitle  = lipgloss.Color("#00BFFF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)
)

// typeBadge and statusBadge reuse the marker colors so the list matches the map.
func typeBadge(pinType events.PinType) string {
	return badgeStyle.Background(lipgloss.Color(events.FillColor(pinType))).Render(pinType.Label())
}

func statusBadge(status events.Status) string {
	return badgeStyle.Background(lipgloss.Color(events.DotColor(status))).Render(status.Label() + " (" + status.Description() + ")")
}
