package server

import (
	"net/http"

	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/MarcoPoloResearchLab/marinemap/internal/mapview"
	"github.com/gin-gonic/gin"
)

const (
	geoJSONContentType = "application/geo+json"
	svgContentType     = "image/svg+xml"
	markerCacheControl = "public, max-age=86400"
)

type mapClickRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type mapCreateRequest struct {
	mapClickRequest
	Name    string `json:"name"`
	PinType string `json:"pinType"`
	Status  string `json:"status"`
}

type dialogFormPayload struct {
	Name        string `json:"name"`
	PinType     string `json:"pinType"`
	Status      string `json:"status"`
	Coordinates string `json:"coordinates"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
}

type dialogPayload struct {
	State string            `json:"state"`
	Form  dialogFormPayload `json:"form"`
}

func (r mapClickRequest) location() (float64, float64, bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return 0, 0, false
	}
	latitude, longitude := *r.Latitude, *r.Longitude
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return 0, 0, false
	}
	return latitude, longitude, true
}

func newDialogPayload(dialog *events.CreateDialog) dialogPayload {
	form := dialog.Form()
	return dialogPayload{
		State: string(dialog.State()),
		Form: dialogFormPayload{
			Name:        form.Name,
			PinType:     form.PinType,
			Status:      form.Status,
			Coordinates: form.Coordinates,
			Latitude:    form.Latitude,
			Longitude:   form.Longitude,
		},
	}
}

func (h *httpHandler) handleMap(c *gin.Context) {
	collection := mapview.BuildFeatureCollection(h.eventsService.List(c.Query("q")))
	body, err := collection.MarshalJSON()
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, geoJSONContentType, body)
}

// handleMapClick returns the create form pre-filled for the clicked location.
func (h *httpHandler) handleMapClick(c *gin.Context) {
	var request mapClickRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	latitude, longitude, ok := request.location()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_location"})
		return
	}
	dialog := events.NewCreateDialog()
	dialog.OpenAt(latitude, longitude)
	c.JSON(http.StatusOK, newDialogPayload(dialog))
}

// handleMapCreate creates an event at a clicked location in one request.
func (h *httpHandler) handleMapCreate(c *gin.Context) {
	var request mapCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	latitude, longitude, ok := request.location()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_location"})
		return
	}
	dialog := events.NewCreateDialog()
	dialog.OpenAt(latitude, longitude)
	form := dialog.Form()
	form.Name = request.Name
	if request.PinType != "" {
		form.PinType = request.PinType
	}
	if request.Status != "" {
		form.Status = request.Status
	}
	if err := dialog.SetForm(form); err != nil {
		h.respondServiceError(c, err)
		return
	}
	event, err := dialog.Submit(c.Request.Context(), h.eventsService, c.GetString(userIDContextKey))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newEventPayload(event))
}

// handleMarker renders the SVG pin for a type and status. Unknown values fall
// back to gray.
func (h *httpHandler) handleMarker(c *gin.Context) {
	pinType := events.PinType(trimSVGSuffix(c.Param("pinType")))
	status := events.Status(trimSVGSuffix(c.Param("status")))
	svg := mapview.RenderMarkerSVG(events.StyleFor(pinType, status))
	c.Header("Cache-Control", markerCacheControl)
	c.Data(http.StatusOK, svgContentType, []byte(svg))
}
