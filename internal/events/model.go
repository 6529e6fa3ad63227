package events

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PinType enumerates the kinds of marine objects an event can mark.
type PinType string

const (
	// PinTypeBuoy marks a buoy.
	PinTypeBuoy PinType = "buoy"
	// PinTypePier marks a pier.
	PinTypePier PinType = "pier"
	// PinTypeTransport marks a transport.
	PinTypeTransport PinType = "transport"
)

// Status enumerates the lifecycle of an event.
type Status string

const (
	// StatusOrdered is the initial status of every new event.
	StatusOrdered Status = "tilattu"
	// StatusDone marks work that has been carried out.
	StatusDone Status = "tehty"
	// StatusInvoiced marks work that has been billed.
	StatusInvoiced Status = "laskutetu"
	// StatusReady marks a closed event.
	StatusReady Status = "valmis"
)

// DefaultStatus is applied when a create request leaves the status blank.
const DefaultStatus = StatusOrdered

const (
	maxIdentifierLength = 190
	maxNameLength       = 320
)

var (
	// ErrInvalidEvent indicates that event fields failed validation.
	ErrInvalidEvent = errors.New("events: invalid event")
	// ErrInvalidEventID indicates that an event identifier is empty or exceeds storage bounds.
	ErrInvalidEventID = errors.New("events: invalid event id")
	// ErrEventNotFound indicates that no event with the requested identifier exists.
	ErrEventNotFound = errors.New("events: event not found")
	// ErrDuplicateID indicates that the collection already holds the identifier.
	ErrDuplicateID = errors.New("events: duplicate event id")
)

// PinTypes lists every pin type in display order.
func PinTypes() []PinType {
	return []PinType{PinTypeBuoy, PinTypePier, PinTypeTransport}
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusOrdered, StatusDone, StatusInvoiced, StatusReady}
}

// ParsePinType validates raw input and returns a PinType.
func ParsePinType(rawInput string) (PinType, error) {
	candidate := PinType(strings.ToLower(strings.TrimSpace(rawInput)))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: unknown pin type %q", ErrInvalidEvent, rawInput)
	}
	return candidate, nil
}

// Valid reports whether the pin type is one of the enumerated values.
func (p PinType) Valid() bool {
	switch p {
	case PinTypeBuoy, PinTypePier, PinTypeTransport:
		return true
	default:
		return false
	}
}

// Label returns the display label used by both views and by search.
func (p PinType) Label() string {
	switch p {
	case PinTypeBuoy:
		return "Buoy"
	case PinTypePier:
		return "Pier"
	case PinTypeTransport:
		return "Transport"
	default:
		return string(p)
	}
}

// ParseStatus validates raw input and returns a Status. Blank input yields DefaultStatus.
func ParseStatus(rawInput string) (Status, error) {
	trimmed := strings.ToLower(strings.TrimSpace(rawInput))
	if trimmed == "" {
		return DefaultStatus, nil
	}
	candidate := Status(trimmed)
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidEvent, rawInput)
	}
	return candidate, nil
}

// Valid reports whether the status is one of the enumerated values.
func (s Status) Valid() bool {
	switch s {
	case StatusOrdered, StatusDone, StatusInvoiced, StatusReady:
		return true
	default:
		return false
	}
}

// Label returns the Finnish display label used by both views and by search.
func (s Status) Label() string {
	switch s {
	case StatusOrdered:
		return "Tilattu"
	case StatusDone:
		return "Tehty"
	case StatusInvoiced:
		return "Laskutetu"
	case StatusReady:
		return "Valmis"
	default:
		return string(s)
	}
}

// Description returns the English meaning of the status.
func (s Status) Description() string {
	switch s {
	case StatusOrdered:
		return "Ordered"
	case StatusDone:
		return "Done"
	case StatusInvoiced:
		return "Invoiced"
	case StatusReady:
		return "Ready"
	default:
		return string(s)
	}
}

// NewEventID validates raw input and returns a trimmed identifier.
func NewEventID(rawInput string) (string, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidEventID)
	}
	if len(trimmed) > maxIdentifierLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidEventID, maxIdentifierLength)
	}
	return trimmed, nil
}

// MarineEvent is a geo-tagged operational record shown on the map and in the list.
type MarineEvent struct {
	ID        string    `gorm:"column:event_id;primaryKey;size:190;not null"`
	Name      string    `gorm:"column:name;size:320;not null"`
	PinType   PinType   `gorm:"column:pin_type;size:32;not null;index:idx_events_type_status,priority:1"`
	Status    Status    `gorm:"column:status;size:32;not null;index:idx_events_type_status,priority:2"`
	Latitude  float64   `gorm:"column:latitude;not null"`
	Longitude float64   `gorm:"column:longitude;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
	UserID    string    `gorm:"column:user_id;size:190;not null;default:''"`
}

// TableName provides the explicit table binding for GORM.
func (MarineEvent) TableName() string {
	return "marine_events"
}

// Coordinates returns the display text derived from latitude and longitude.
func (e MarineEvent) Coordinates() string {
	return FormatCoordinates(e.Latitude, e.Longitude)
}

// Style returns the marker style for the event.
func (e MarineEvent) Style() MarkerStyle {
	return StyleFor(e.PinType, e.Status)
}

// Draft holds validated fields for a new event before id and timestamp are assigned.
type Draft struct {
	Name      string
	PinType   PinType
	Status    Status
	Latitude  float64
	Longitude float64
}

// Patch describes an edit. Nil fields are left untouched.
type Patch struct {
	Name      *string
	PinType   *PinType
	Status    *Status
	Latitude  *float64
	Longitude *float64
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.PinType == nil && p.Status == nil && p.Latitude == nil && p.Longitude == nil
}

func (p Patch) applyTo(event MarineEvent) (MarineEvent, error) {
	updated := event
	if p.Name != nil {
		name, err := normalizeName(*p.Name)
		if err != nil {
			return MarineEvent{}, err
		}
		updated.Name = name
	}
	if p.PinType != nil {
		if !p.PinType.Valid() {
			return MarineEvent{}, fmt.Errorf("%w: unknown pin type %q", ErrInvalidEvent, *p.PinType)
		}
		updated.PinType = *p.PinType
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return MarineEvent{}, fmt.Errorf("%w: unknown status %q", ErrInvalidEvent, *p.Status)
		}
		updated.Status = *p.Status
	}
	if p.Latitude != nil {
		if err := validateLatitude(*p.Latitude); err != nil {
			return MarineEvent{}, err
		}
		updated.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		if err := validateLongitude(*p.Longitude); err != nil {
			return MarineEvent{}, err
		}
		updated.Longitude = *p.Longitude
	}
	return updated, nil
}

// Validate checks every field of the draft.
func (d Draft) Validate() error {
	if _, err := normalizeName(d.Name); err != nil {
		return err
	}
	if !d.PinType.Valid() {
		return fmt.Errorf("%w: unknown pin type %q", ErrInvalidEvent, d.PinType)
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidEvent, d.Status)
	}
	if err := validateLatitude(d.Latitude); err != nil {
		return err
	}
	return validateLongitude(d.Longitude)
}

func normalizeName(rawInput string) (string, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidEvent)
	}
	if len(trimmed) > maxNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidEvent, maxNameLength)
	}
	return trimmed, nil
}
