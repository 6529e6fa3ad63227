package mapview

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
)

// Marker icon geometry, in pixels.
const (
	MarkerWidth   = 24
	MarkerHeight  = 32
	MarkerAnchorX = 12
	MarkerAnchorY = 32
)

const markerTemplate = `<svg width="%d" height="%d" viewBox="0 0 24 32" xmlns="http://www.w3.org/2000/svg">` +
	`<path d="M12 0C5.4 0 0 5.4 0 12c0 12 12 20 12 20s12-8 12-20c0-6.6-5.4-12-12-12z" fill="%s" stroke="white" stroke-width="2"/>` +
	`<circle cx="12" cy="12" r="4" fill="%s"/>` +
	`</svg>`

// RenderMarkerSVG draws the pin icon: a teardrop filled with the type color
// and a dot in the status color.
func RenderMarkerSVG(style events.MarkerStyle) string {
	return fmt.Sprintf(markerTemplate, MarkerWidth, MarkerHeight, style.Fill, style.Dot)
}

// MarkerDataURI returns the icon as a base64 data URI for clients that inline icons.
func MarkerDataURI(style events.MarkerStyle) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(RenderMarkerSVG(style)))
}

// MarkerPath returns the HTTP path serving the icon for the pair.
func MarkerPath(pinType events.PinType, status events.Status) string {
	return "/markers/" + url.PathEscape(string(pinType)) + "/" + url.PathEscape(string(status))
}
