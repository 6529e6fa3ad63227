package events

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// FormatCoordinates renders a latitude/longitude pair with four decimals.
func FormatCoordinates(latitude, longitude float64) string {
	return fmt.Sprintf("%.4f, %.4f", latitude, longitude)
}

// ParseCoordinates parses "lat, lng" display text. Whitespace around either
// number is ignored. When a semicolon is present it separates the pair and
// commas inside each number are decimal commas ("60,1699; 24,9384").
func ParseCoordinates(rawInput string) (float64, float64, error) {
	var parts []string
	if strings.Contains(rawInput, ";") {
		parts = strings.Split(rawInput, ";")
		for index, part := range parts {
			parts[index] = strings.ReplaceAll(part, ",", ".")
		}
	} else {
		parts = strings.Split(rawInput, ",")
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: coordinates %q are not a lat, lng pair", ErrInvalidEvent, rawInput)
	}
	latitude, err := ParseLatitude(parts[0])
	if err != nil {
		return 0, 0, err
	}
	longitude, err := ParseLongitude(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return latitude, longitude, nil
}

// ParseLatitude parses and range-checks a latitude.
func ParseLatitude(rawInput string) (float64, error) {
	value, err := parseDegrees(rawInput, "latitude")
	if err != nil {
		return 0, err
	}
	return value, validateLatitude(value)
}

// ParseLongitude parses and range-checks a longitude.
func ParseLongitude(rawInput string) (float64, error) {
	value, err := parseDegrees(rawInput, "longitude")
	if err != nil {
		return 0, err
	}
	return value, validateLongitude(value)
}

func parseDegrees(rawInput, field string) (float64, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidEvent, field)
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidEvent, field, rawInput)
	}
	return value, nil
}

func validateLatitude(value float64) error {
	if math.IsNaN(value) || value < minLatitude || value > maxLatitude {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidEvent, value)
	}
	return nil
}

func validateLongitude(value float64) error {
	if math.IsNaN(value) || value < minLongitude || value > maxLongitude {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidEvent, value)
	}
	return nil
}
