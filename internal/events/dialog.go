package events

import (
	"context"
	"errors"
	"strconv"
)

// DialogState is the state of a CreateDialog.
type DialogState string

const (
	// DialogClosed means no create form is shown.
	DialogClosed DialogState = "closed"
	// DialogOpen means the create form is shown and accepts input.
	DialogOpen DialogState = "open"
)

// ErrDialogClosed indicates an input or submit against a closed dialog.
var ErrDialogClosed = errors.New("events: create dialog is closed")

// Creator appends a validated draft to the event collection.
type Creator interface {
	Create(ctx context.Context, draft Draft, userID string) (MarineEvent, error)
}

// CreateDialog models the create form lifecycle:
// closed -> open -> (submit -> closed | cancel -> closed).
// A rejected submit keeps the dialog open with its fields untouched.
type CreateDialog struct {
	state DialogState
	form  CreateForm
}

// NewCreateDialog returns a closed dialog.
func NewCreateDialog() *CreateDialog {
	return &CreateDialog{state: DialogClosed}
}

// State returns the current dialog state.
func (d *CreateDialog) State() DialogState {
	if d.state == "" {
		return DialogClosed
	}
	return d.state
}

// Open shows an empty form.
func (d *CreateDialog) Open() {
	d.state = DialogOpen
	d.form = CreateForm{}
}

// OpenAt shows a form pre-filled with the clicked location, the buoy type and the default status.
func (d *CreateDialog) OpenAt(latitude, longitude float64) {
	d.state = DialogOpen
	d.form = CreateForm{
		PinType:     string(PinTypeBuoy),
		Status:      string(DefaultStatus),
		Coordinates: FormatCoordinates(latitude, longitude),
		Latitude:    strconv.FormatFloat(latitude, 'f', -1, 64),
		Longitude:   strconv.FormatFloat(longitude, 'f', -1, 64),
	}
}

// Form returns the current field values.
func (d *CreateDialog) Form() CreateForm {
	return d.form
}

// SetForm replaces the field values of an open dialog.
func (d *CreateDialog) SetForm(form CreateForm) error {
	if d.State() != DialogOpen {
		return ErrDialogClosed
	}
	d.form = form
	return nil
}

// Submit validates the form and hands the draft to the creator. On success
// the dialog closes and its fields are cleared.
func (d *CreateDialog) Submit(ctx context.Context, creator Creator, userID string) (MarineEvent, error) {
	if d.State() != DialogOpen {
		return MarineEvent{}, ErrDialogClosed
	}
	draft, err := d.form.Parse()
	if err != nil {
		return MarineEvent{}, err
	}
	event, err := creator.Create(ctx, draft, userID)
	if err != nil {
		return MarineEvent{}, err
	}
	d.Cancel()
	return event, nil
}

// Cancel closes the dialog and clears its fields.
func (d *CreateDialog) Cancel() {
	d.state = DialogClosed
	d.form = CreateForm{}
}
