package scheduling

import (
	"fmt"

	"clinic-booking-server/internal/models"
)

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	What string // "Patient", "Doctor", "Appointment", ...
}

func (e *NotFoundError) Error() string {
	return e.What + " not found!"
}

// NoMatchError reports an empty search result. It is a distinct type so the
// handler can keep the source's message instead of the "X not found!" shape.
type NoMatchError struct {
	Message string
}

func (e *NoMatchError) Error() string {
	return e.Message
}

// ConflictError reports an existing scheduled appointment blocking a create.
// Existing carries the blocking appointment for the 409 payload.
type ConflictError struct {
	Existing   *models.Appointment
	DoctorName string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Appointment already scheduled with Dr. %s on %s at %s.",
		e.DoctorName, FormatOnlyDate(e.Existing.AppointmentDate), e.Existing.AppointmentTime)
}

// InvalidArgumentError reports a request the caller can fix.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}
