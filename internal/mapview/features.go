package mapview

import (
	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/paulmach/orb/geojson"
)

// BuildFeatureCollection renders the visible events as GeoJSON points and
// attaches the fitted viewport as the bbox plus a "viewport" member.
func BuildFeatureCollection(visible []events.MarineEvent) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	for _, event := range visible {
		collection.Append(BuildFeature(event))
	}

	viewport := FitViewport(visible)
	viewportMember := map[string]interface{}{
		"center": []float64{viewport.Center.Lat(), viewport.Center.Lon()},
	}
	if viewport.Bounds != nil {
		collection.BBox = geojson.NewBBox(*viewport.Bounds)
		viewportMember["bounds"] = [][]float64{
			{viewport.Bounds.Min.Lat(), viewport.Bounds.Min.Lon()},
			{viewport.Bounds.Max.Lat(), viewport.Bounds.Max.Lon()},
		}
	} else {
		viewportMember["zoom"] = viewport.Zoom
	}
	collection.ExtraMembers = geojson.Properties{"viewport": viewportMember}
	return collection
}

// BuildFeature renders one event as a GeoJSON point feature.
func BuildFeature(event events.MarineEvent) *geojson.Feature {
	feature := geojson.NewFeature(Point(event))
	feature.ID = event.ID
	style := event.Style()
	feature.Properties = geojson.Properties{
		"id":          event.ID,
		"name":        event.Name,
		"pinType":     string(event.PinType),
		"status":      string(event.Status),
		"typeLabel":   event.PinType.Label(),
		"statusLabel": event.Status.Label(),
		"coordinates": event.Coordinates(),
		"fill":        style.Fill,
		"dot":         style.Dot,
		"icon":        MarkerPath(event.PinType, event.Status),
		"iconDataUri": MarkerDataURI(style),
	}
	return feature
}
