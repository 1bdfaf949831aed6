package scheduling

import (
	"context"
	"fmt"
	"time"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"
)

// Lifecycle owns creation, cancellation, rescheduling and status transitions
// of appointments. Every operation is a stateless read-check-then-write
// against the store; there is no transaction and no lock, so concurrent
// calls can race past the conflict check. That matches the behavior this
// system replaces and callers must not assume stronger guarantees.
type Lifecycle struct {
	store Store
}

// NewLifecycle creates a Lifecycle backed by store.
func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store}
}

// CreateParams are the inputs for booking a new appointment.
type CreateParams struct {
	PatientID string
	DoctorID  string
	Date      time.Time
	Time      string
	Reason    string
	Notes     string
}

// Create books a new scheduled appointment. The patient gains the patient
// role on first booking, and a PatientRecord is created for them if none
// exists yet. A still-scheduled appointment for the same (patient, doctor)
// pair rejects the create with a ConflictError carrying the blocking
// appointment. The role save and the appointment save are two separate
// writes; a failure between them is not rolled back.
func (l *Lifecycle) Create(ctx context.Context, p CreateParams) (*models.Appointment, error) {
	patient, err := l.store.FindUserByID(ctx, p.PatientID)
	if err != nil {
		return nil, fmt.Errorf("looking up patient: %w", err)
	}
	if patient == nil {
		return nil, &NotFoundError{What: "Patient"}
	}

	doctor, err := l.store.FindUserByID(ctx, p.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("looking up doctor: %w", err)
	}
	if doctor == nil {
		return nil, &NotFoundError{What: "Doctor"}
	}

	if err := l.ensurePatientRecord(ctx, p.PatientID); err != nil {
		return nil, err
	}

	existing, err := l.store.FindAppointments(ctx, AppointmentFilter{
		PatientID: p.PatientID,
		DoctorID:  p.DoctorID,
		Status:    models.StatusScheduled,
	})
	if err != nil {
		return nil, fmt.Errorf("checking for conflicting appointment: %w", err)
	}
	if len(existing) > 0 {
		return nil, &ConflictError{Existing: &existing[0], DoctorName: doctor.Name}
	}

	if err := l.promote(ctx, patient); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		PatientID:       p.PatientID,
		DoctorID:        p.DoctorID,
		AppointmentDate: p.Date,
		AppointmentTime: p.Time,
		ReasonForVisit:  utils.SentenceCase(p.Reason),
		Notes:           utils.SentenceCase(p.Notes),
		Status:          models.StatusScheduled,
	}
	if err := l.store.CreateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("saving appointment: %w", err)
	}

	return l.reload(ctx, appt.ID)
}

// Cancel sets the appointment to cancelled regardless of its current state,
// so cancelling a completed or already-cancelled appointment is allowed and
// idempotent.
func (l *Lifecycle) Cancel(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appt, err := l.store.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("looking up appointment: %w", err)
	}
	if appt == nil {
		return nil, &NotFoundError{What: "Appointment"}
	}

	appt.Status = models.StatusCancelled
	if err := l.store.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("saving appointment: %w", err)
	}

	return l.reload(ctx, appt.ID)
}

// RescheduleParams are the inputs for moving an existing appointment.
// DoctorID is optional; when empty the appointment keeps its doctor.
type RescheduleParams struct {
	AppointmentID string
	Date          time.Time
	Time          string
	DoctorID      string
	Reason        string
}

// Reschedule overwrites the appointment's date, time, doctor and reason in
// place and forces it back to scheduled regardless of its prior status. No
// conflict re-check runs against the new pair: a reschedule can land on a
// pair that already has another scheduled appointment.
func (l *Lifecycle) Reschedule(ctx context.Context, p RescheduleParams) (*models.Appointment, error) {
	appt, err := l.store.FindAppointmentByID(ctx, p.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("looking up appointment: %w", err)
	}
	if appt == nil {
		return nil, &NotFoundError{What: "Appointment"}
	}

	if p.DoctorID != "" {
		doctor, err := l.store.FindUserByID(ctx, p.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("looking up doctor: %w", err)
		}
		if doctor == nil {
			return nil, &NotFoundError{What: "Doctor"}
		}
		appt.DoctorID = p.DoctorID
	}

	appt.AppointmentDate = p.Date
	appt.AppointmentTime = p.Time
	appt.ReasonForVisit = utils.SentenceCase(p.Reason)
	appt.Status = models.StatusScheduled

	if err := l.store.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("saving appointment: %w", err)
	}

	return l.reload(ctx, appt.ID)
}

// UpdateStatus moves the appointment to one of the three valid states. When
// callerUserID is supplied the appointment must belong to that patient.
func (l *Lifecycle) UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus, callerUserID string) (*models.Appointment, error) {
	if !models.ValidStatus(status) {
		return nil, &InvalidArgumentError{Message: "Invalid status value!"}
	}

	if callerUserID != "" {
		rec, err := l.store.FindPatientRecordByUserID(ctx, callerUserID)
		if err != nil {
			return nil, fmt.Errorf("looking up patient record: %w", err)
		}
		if rec == nil {
			return nil, &NotFoundError{What: "Patient"}
		}
	}

	appt, err := l.store.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("looking up appointment: %w", err)
	}
	if appt == nil || (callerUserID != "" && appt.PatientID != callerUserID) {
		return nil, &NotFoundError{What: "Appointment"}
	}

	appt.Status = status
	if err := l.store.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("saving appointment: %w", err)
	}

	return appt, nil
}

// Delete removes the appointment permanently. There is no soft-delete flag.
func (l *Lifecycle) Delete(ctx context.Context, appointmentID string) error {
	found, err := l.store.DeleteAppointment(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}
	if !found {
		return &NotFoundError{What: "Appointment"}
	}
	return nil
}

// BookedTimeSlots returns the time strings of the doctor's scheduled
// appointments on exactly the given stored date value. It is a read for
// front-end slot pickers; nothing stops two patients from booking the same
// returned slot between this read and their writes.
func (l *Lifecycle) BookedTimeSlots(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	appts, err := l.store.FindAppointments(ctx, AppointmentFilter{
		DoctorID:   doctorID,
		Status:     models.StatusScheduled,
		DateEquals: &date,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching booked times: %w", err)
	}

	times := make([]string, 0, len(appts))
	for _, appt := range appts {
		times = append(times, appt.AppointmentTime)
	}
	return times, nil
}

// ensurePatientRecord lazily creates the record-keeping extension for a
// user the first time they are booked. Once created it is never deleted.
func (l *Lifecycle) ensurePatientRecord(ctx context.Context, userID string) error {
	rec, err := l.store.FindPatientRecordByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("looking up patient record: %w", err)
	}
	if rec != nil {
		return nil
	}

	rec = &models.PatientRecord{
		UserID:         userID,
		MedicalHistory: models.StringList{},
		AddlInfo:       models.InfoList{},
		VisitHistory:   models.VisitList{},
	}
	if err := l.store.CreatePatientRecord(ctx, rec); err != nil {
		return fmt.Errorf("creating patient record: %w", err)
	}
	return nil
}

// promote grants the patient role ahead of the appointment save. The role
// write is separate from the appointment write and is not rolled back if
// the latter fails.
func (l *Lifecycle) promote(ctx context.Context, patient *models.User) error {
	patientRole, err := l.store.FindRoleByName(ctx, models.RolePatient)
	if err != nil {
		return fmt.Errorf("looking up patient role: %w", err)
	}
	if patientRole == nil {
		// Roles are seeded at startup; without the role there is nothing
		// to grant and the booking proceeds.
		return nil
	}

	roles, changed := promoteToPatient(patient.Roles, *patientRole)
	if !changed {
		return nil
	}
	if err := l.store.SetUserRoles(ctx, patient, roles); err != nil {
		return fmt.Errorf("updating user roles: %w", err)
	}
	return nil
}

// promoteToPatient computes the role set after granting the patient role.
// A user whose only role is the generic "user" role has it replaced
// outright; otherwise the patient role is appended if absent.
func promoteToPatient(current []models.Role, patient models.Role) ([]models.Role, bool) {
	if len(current) == 1 && current[0].Name == models.RoleUser {
		return []models.Role{patient}, true
	}
	for _, r := range current {
		if r.Name == patient.Name {
			return current, false
		}
	}
	updated := make([]models.Role, 0, len(current)+1)
	updated = append(updated, current...)
	updated = append(updated, patient)
	return updated, true
}

// reload fetches the appointment joined with its patient and doctor for the
// response projection.
func (l *Lifecycle) reload(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := l.store.FindAppointmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reloading appointment: %w", err)
	}
	if appt == nil {
		return nil, &NotFoundError{What: "Appointment"}
	}
	return appt, nil
}
