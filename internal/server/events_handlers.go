package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"github.com/MarcoPoloResearchLab/marinemap/internal/mapview"
	"github.com/gin-gonic/gin"
)

type eventPayload struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	PinType           string  `json:"pinType"`
	Status            string  `json:"status"`
	TypeLabel         string  `json:"typeLabel"`
	StatusLabel       string  `json:"statusLabel"`
	StatusDescription string  `json:"statusDescription"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Coordinates       string  `json:"coordinates"`
	CreatedAt         string  `json:"createdAt"`
	UserID            string  `json:"userId,omitempty"`
	Fill              string  `json:"fill"`
	Dot               string  `json:"dot"`
	Icon              string  `json:"icon"`
}

type listEventsResponse struct {
	Query  string         `json:"query"`
	Total  int            `json:"total"`
	Events []eventPayload `json:"events"`
}

// flexibleString accepts a JSON string or number so coordinates can be
// posted either way.
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*f = flexibleString(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*f = flexibleString(number.String())
	return nil
}

type createEventRequest struct {
	Name        string         `json:"name"`
	PinType     string         `json:"pinType"`
	Status      string         `json:"status"`
	Coordinates string         `json:"coordinates"`
	Latitude    flexibleString `json:"latitude"`
	Longitude   flexibleString `json:"longitude"`
}

func (r createEventRequest) form() events.CreateForm {
	return events.CreateForm{
		Name:        r.Name,
		PinType:     r.PinType,
		Status:      r.Status,
		Coordinates: r.Coordinates,
		Latitude:    string(r.Latitude),
		Longitude:   string(r.Longitude),
	}
}

type updateEventRequest struct {
	Name      *string         `json:"name"`
	PinType   *string         `json:"pinType"`
	Status    *string         `json:"status"`
	Latitude  *flexibleString `json:"latitude"`
	Longitude *flexibleString `json:"longitude"`
}

func (r updateEventRequest) form() events.EditForm {
	form := events.EditForm{
		Name:    r.Name,
		PinType: r.PinType,
		Status:  r.Status,
	}
	if r.Latitude != nil {
		value := string(*r.Latitude)
		form.Latitude = &value
	}
	if r.Longitude != nil {
		value := string(*r.Longitude)
		form.Longitude = &value
	}
	return form
}

func newEventPayload(event events.MarineEvent) eventPayload {
	style := event.Style()
	return eventPayload{
		ID:                event.ID,
		Name:              event.Name,
		PinType:           string(event.PinType),
		Status:            string(event.Status),
		TypeLabel:         event.PinType.Label(),
		StatusLabel:       event.Status.Label(),
		StatusDescription: event.Status.Description(),
		Latitude:          event.Latitude,
		Longitude:         event.Longitude,
		Coordinates:       event.Coordinates(),
		CreatedAt:         event.CreatedAt.UTC().Format(time.RFC3339),
		UserID:            event.UserID,
		Fill:              style.Fill,
		Dot:               style.Dot,
		Icon:              mapview.MarkerPath(event.PinType, event.Status),
	}
}

func newEventPayloads(visible []events.MarineEvent) []eventPayload {
	payloads := make([]eventPayload, 0, len(visible))
	for _, event := range visible {
		payloads = append(payloads, newEventPayload(event))
	}
	return payloads
}

func (h *httpHandler) handleListEvents(c *gin.Context) {
	query := c.Query("q")
	visible := h.eventsService.List(query)
	c.JSON(http.StatusOK, listEventsResponse{
		Query:  query,
		Total:  len(visible),
		Events: newEventPayloads(visible),
	})
}

func (h *httpHandler) handleGetEvent(c *gin.Context) {
	event, err := h.eventsService.Get(c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventPayload(event))
}

func (h *httpHandler) handleCreateEvent(c *gin.Context) {
	var request createEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	draft, err := request.form().Parse()
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	event, err := h.eventsService.Create(c.Request.Context(), draft, c.GetString(userIDContextKey))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newEventPayload(event))
}

func (h *httpHandler) handleUpdateEvent(c *gin.Context) {
	var request updateEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	patch, err := request.form().Parse()
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	event, err := h.eventsService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventPayload(event))
}

func (h *httpHandler) handleDeleteEvent(c *gin.Context) {
	removed, err := h.eventsService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func trimSVGSuffix(value string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(value)), ".svg")
}
