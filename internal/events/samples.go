package events

import "time"

// SampleEvents returns the events shown on a fresh installation.
func SampleEvents() []MarineEvent {
	return []MarineEvent{
		{
			ID:        "1",
			Name:      "Harbor Buoy A1",
			PinType:   PinTypeBuoy,
			Status:    StatusReady,
			Latitude:  60.1699,
			Longitude: 24.9384,
			CreatedAt: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			Name:      "Main Pier",
			PinType:   PinTypePier,
			Status:    StatusDone,
			Latitude:  60.1609,
			Longitude: 24.9484,
			CreatedAt: time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "3",
			Name:      "Supply Transport",
			PinType:   PinTypeTransport,
			Status:    StatusOrdered,
			Latitude:  60.1799,
			Longitude: 24.9284,
			CreatedAt: time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC),
		},
	}
}
