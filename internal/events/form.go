package events

import (
	"fmt"
	"strings"
)

// CreateForm carries the raw field values of the create form.
type CreateForm struct {
	Name        string
	PinType     string
	Status      string
	Coordinates string
	Latitude    string
	Longitude   string
}

// Parse validates the form and returns a Draft. A blank status defaults to
// DefaultStatus. When both latitude and longitude are blank the coordinates
// text is parsed as "lat, lng" instead.
func (f CreateForm) Parse() (Draft, error) {
	name, err := normalizeName(f.Name)
	if err != nil {
		return Draft{}, err
	}
	if strings.TrimSpace(f.PinType) == "" {
		return Draft{}, fmt.Errorf("%w: pin type is required", ErrInvalidEvent)
	}
	pinType, err := ParsePinType(f.PinType)
	if err != nil {
		return Draft{}, err
	}
	status, err := ParseStatus(f.Status)
	if err != nil {
		return Draft{}, err
	}

	var latitude, longitude float64
	if strings.TrimSpace(f.Latitude) == "" && strings.TrimSpace(f.Longitude) == "" {
		if strings.TrimSpace(f.Coordinates) == "" {
			return Draft{}, fmt.Errorf("%w: location is required", ErrInvalidEvent)
		}
		latitude, longitude, err = ParseCoordinates(f.Coordinates)
		if err != nil {
			return Draft{}, err
		}
	} else {
		latitude, err = ParseLatitude(f.Latitude)
		if err != nil {
			return Draft{}, err
		}
		longitude, err = ParseLongitude(f.Longitude)
		if err != nil {
			return Draft{}, err
		}
	}

	return Draft{
		Name:      name,
		PinType:   pinType,
		Status:    status,
		Latitude:  latitude,
		Longitude: longitude,
	}, nil
}

// EditForm carries raw field values of the edit form. Nil fields are unchanged.
type EditForm struct {
	Name      *string
	PinType   *string
	Status    *string
	Latitude  *string
	Longitude *string
}

// Parse validates the present fields and returns a Patch.
func (f EditForm) Parse() (Patch, error) {
	var patch Patch
	if f.Name != nil {
		name, err := normalizeName(*f.Name)
		if err != nil {
			return Patch{}, err
		}
		patch.Name = &name
	}
	if f.PinType != nil {
		pinType, err := ParsePinType(*f.PinType)
		if err != nil {
			return Patch{}, err
		}
		patch.PinType = &pinType
	}
	if f.Status != nil {
		if strings.TrimSpace(*f.Status) == "" {
			return Patch{}, fmt.Errorf("%w: status is required", ErrInvalidEvent)
		}
		status, err := ParseStatus(*f.Status)
		if err != nil {
			return Patch{}, err
		}
		patch.Status = &status
	}
	if f.Latitude != nil {
		latitude, err := ParseLatitude(*f.Latitude)
		if err != nil {
			return Patch{}, err
		}
		patch.Latitude = &latitude
	}
	if f.Longitude != nil {
		longitude, err := ParseLongitude(*f.Longitude)
		if err != nil {
			return Patch{}, err
		}
		patch.Longitude = &longitude
	}
	return patch, nil
}
