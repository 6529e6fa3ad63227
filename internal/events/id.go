package events

import "github.com/google/uuid"

// IDProvider issues event identifiers.
type IDProvider interface {
	NewID() (string, error)
}

type timeOrderedIDProvider struct{}

// NewTimeOrderedIDProvider returns an IDProvider issuing UUIDv7 values, whose
// leading bits carry the creation time in milliseconds.
func NewTimeOrderedIDProvider() IDProvider {
	return timeOrderedIDProvider{}
}

func (timeOrderedIDProvider) NewID() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return value.String(), nil
}
