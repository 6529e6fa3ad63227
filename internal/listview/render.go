package listview

import (
	"fmt"
	"strings"

	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/charmbracelet/lipgloss"
)

const createdAtLayout = "2006-01-02"

// Render draws the list view for the visible events.
func Render(visible []events.MarineEvent, query string) string {
	header := titleStyle.Render(fmt.Sprintf("Total Events: %d", len(visible)))
	if query != "" {
		header += mutedStyle.Render(fmt.Sprintf("  (search: %q)", query))
	}

	if len(visible) == 0 {
		return strings.Join([]string{
			header,
			"",
			nameStyle.Render("No marine events found"),
			mutedStyle.Render("Add your first event to get started"),
		}, "\n") + "\n"
	}

	cards := make([]string, 0, len(visible)+1)
	cards = append(cards, header)
	for _, event := range visible {
		cards = append(cards, renderCard(event))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...) + "\n"
}

func renderCard(event events.MarineEvent) string {
	lines := []string{
		nameStyle.Render(event.Name) + " " + typeBadge(event.PinType) + " " + statusBadge(event.Status),
		mutedStyle.Render(fmt.Sprintf("Lat: %.6f, Lng: %.6f", event.Latitude, event.Longitude)),
		mutedStyle.Render("Created: " + event.CreatedAt.Format(createdAtLayout)),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
