package mapview

import (
	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/paulmach/orb"
)

const (
	// DefaultZoom is used when there is nothing to fit.
	DefaultZoom = 10
	// BoundsPadding is the share of the span added on each side of fitted bounds.
	BoundsPadding = 0.1
)

// DefaultCenter is Helsinki, where the sample events are.
var DefaultCenter = orb.Point{24.9384, 60.1699}

// Viewport tells the map client where to look. Bounds is nil when there is
// nothing to fit, in which case Center and Zoom apply.
type Viewport struct {
	Bounds *orb.Bound
	Center orb.Point
	Zoom   int
}

// FitViewport returns bounds enclosing every event, padded by BoundsPadding of
// the span on each side. Without events it returns the default center.
func FitViewport(visible []events.MarineEvent) Viewport {
	if len(visible) == 0 {
		return Viewport{Center: DefaultCenter, Zoom: DefaultZoom}
	}

	bound := Point(visible[0]).Bound()
	for _, event := range visible[1:] {
		bound = bound.Extend(Point(event))
	}
	padded := padBound(bound, BoundsPadding)
	return Viewport{
		Bounds: &padded,
		Center: padded.Center(),
	}
}

// Point converts an event location to an orb point (longitude first).
func Point(event events.MarineEvent) orb.Point {
	return orb.Point{event.Longitude, event.Latitude}
}

func padBound(bound orb.Bound, ratio float64) orb.Bound {
	padX := (bound.Max.X() - bound.Min.X()) * ratio
	padY := (bound.Max.Y() - bound.Min.Y()) * ratio
	return orb.Bound{
		Min: orb.Point{bound.Min.X() - padX, bound.Min.Y() - padY},
		Max: orb.Point{bound.Max.X() + padX, bound.Max.Y() + padY},
	}
}
