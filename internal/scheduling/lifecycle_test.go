package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-booking-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june1 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func bookingParams(patientID, doctorID string) CreateParams {
	return CreateParams{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      june1,
		Time:      "10:00",
		Reason:    "annual checkup",
		Notes:     "first visit",
	}
}

func TestCreateAppointment(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com", models.RoleUser)
	doctor := store.addUser("Grace Hopper", "grace@example.com", models.RoleDoctor)
	store.addRole(models.RolePatient)

	lc := NewLifecycle(store)
	appt, err := lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
	require.NoError(t, err)

	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, "Annual checkup", appt.ReasonForVisit)
	assert.Equal(t, "First visit", appt.Notes)
	assert.Equal(t, "10:00", appt.AppointmentTime)
	assert.Equal(t, patient.Name, appt.Patient.Name)
	assert.Equal(t, doctor.Name, appt.Doctor.Name)
}

func TestCreateRejectsMissingPeople(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	lc := NewLifecycle(store)

	var notFound *NotFoundError

	_, err := lc.Create(context.Background(), bookingParams("missing", "missing"))
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Patient", notFound.What)

	_, err = lc.Create(context.Background(), bookingParams(patient.ID, "missing"))
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Doctor", notFound.What)
}

func TestCreateLazilyCreatesPatientRecord(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com", models.RoleDoctor)
	lc := NewLifecycle(store)

	_, err := lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, store.createRecCalls)

	rec := store.records[patient.ID]
	require.NotNil(t, rec)
	assert.Empty(t, rec.MedicalHistory)
	assert.Empty(t, rec.VisitHistory)
	assert.Nil(t, rec.NextAppointment)

	// A later booking with another doctor reuses the record.
	other := store.addUser("Ada Lovelace", "ada@example.com", models.RoleDoctor)
	_, err = lc.Create(context.Background(), bookingParams(patient.ID, other.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, store.createRecCalls)
}

func TestCreateConflictOnScheduledPair(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com", models.RoleDoctor)
	store.addRole(models.RolePatient)
	lc := NewLifecycle(store)

	first, err := lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
	require.NoError(t, err)

	// Second booking for the same pair, any date, is rejected with the
	// original appointment untouched.
	params := bookingParams(patient.ID, doctor.ID)
	params.Date = june1.AddDate(0, 0, 7)
	params.Time = "14:00"
	_, err = lc.Create(context.Background(), params)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.Existing.ID)
	assert.True(t, conflict.Existing.AppointmentDate.Equal(june1))
	assert.Equal(t, "10:00", conflict.Existing.AppointmentTime)
	assert.Contains(t, conflict.Error(), "Dr. Grace Hopper")
	assert.Contains(t, conflict.Error(), "01/06/2025")
	assert.Contains(t, conflict.Error(), "10:00")
	assert.Equal(t, 1, store.createApptCalls)
}

func TestCreateAfterCancelSucceeds(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com", models.RoleDoctor)
	store.addRole(models.RolePatient)
	lc := NewLifecycle(store)

	first, err := lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
	require.NoError(t, err)

	_, err = lc.Cancel(context.Background(), first.ID)
	require.NoError(t, err)

	// Cancelled appointments do not block a new booking for the pair.
	_, err = lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
	assert.NoError(t, err)
}

func TestCreatePromotesUserToPatient(t *testing.T) {
	store := newFakeStore()
	doctor := store.addUser("Grace Hopper", "grace@example.com", models.RoleDoctor)
	store.addRole(models.RolePatient)
	lc := NewLifecycle(store)

	t.Run("generic user role is replaced", func(t *testing.T) {
		patient := store.addUser("Plain User", "plain@example.com", models.RoleUser)
		_, err := lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
		require.NoError(t, err)

		assert.Equal(t, []string{models.RolePatient}, store.users[patient.ID].RoleNames())
	})

	t.Run("other roles are kept and patient appended", func(t *testing.T) {
		patient := store.addUser("Also Doctor", "alsodr@example.com", models.RoleDoctor)
		_, err := lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{models.RoleDoctor, models.RolePatient}, store.users[patient.ID].RoleNames())
	})

	t.Run("existing patient role is untouched", func(t *testing.T) {
		before := store.setRolesCalls
		patient := store.addUser("Returning", "ret@example.com", models.RolePatient)
		_, err := lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
		require.NoError(t, err)

		assert.Equal(t, []string{models.RolePatient}, store.users[patient.ID].RoleNames())
		assert.Equal(t, before, store.setRolesCalls)
	})
}

func TestPromoteToPatient(t *testing.T) {
	patient := models.Role{Name: models.RolePatient}
	user := models.Role{Name: models.RoleUser}
	doctor := models.Role{Name: models.RoleDoctor}

	roles, changed := promoteToPatient([]models.Role{user}, patient)
	assert.True(t, changed)
	assert.Equal(t, []models.Role{patient}, roles)

	roles, changed = promoteToPatient([]models.Role{user, doctor}, patient)
	assert.True(t, changed)
	assert.Len(t, roles, 3)

	_, changed = promoteToPatient([]models.Role{patient}, patient)
	assert.False(t, changed)

	roles, changed = promoteToPatient(nil, patient)
	assert.True(t, changed)
	assert.Equal(t, []models.Role{patient}, roles)
}

func TestCancelIsIdempotent(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com")
	appt := store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusCompleted)
	lc := NewLifecycle(store)

	// Cancelling a completed appointment is allowed.
	cancelled, err := lc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// Cancelling again succeeds and the status stays cancelled.
	cancelled, err = lc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
}

func TestCancelMissingAppointment(t *testing.T) {
	lc := NewLifecycle(newFakeStore())
	var notFound *NotFoundError
	_, err := lc.Cancel(context.Background(), "missing")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Appointment", notFound.What)
}

func TestRescheduleForcesScheduled(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com")
	appt := store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusCancelled)
	lc := NewLifecycle(store)

	newDate := june1.AddDate(0, 0, 3)
	updated, err := lc.Reschedule(context.Background(), RescheduleParams{
		AppointmentID: appt.ID,
		Date:          newDate,
		Time:          "11:30",
		Reason:        "follow up",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusScheduled, updated.Status)
	assert.True(t, updated.AppointmentDate.Equal(newDate))
	assert.Equal(t, "11:30", updated.AppointmentTime)
	assert.Equal(t, "Follow up", updated.ReasonForVisit)
	assert.Equal(t, doctor.ID, updated.DoctorID, "doctor unchanged when not supplied")
}

func TestRescheduleReassignsDoctor(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com")
	other := store.addUser("Ada Lovelace", "ada@example.com")
	appt := store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusScheduled)
	lc := NewLifecycle(store)

	updated, err := lc.Reschedule(context.Background(), RescheduleParams{
		AppointmentID: appt.ID,
		Date:          june1,
		Time:          "10:00",
		DoctorID:      other.ID,
		Reason:        "second opinion",
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.DoctorID)

	var notFound *NotFoundError
	_, err = lc.Reschedule(context.Background(), RescheduleParams{
		AppointmentID: appt.ID,
		Date:          june1,
		Time:          "10:00",
		DoctorID:      "missing",
		Reason:        "second opinion",
	})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Doctor", notFound.What)
}

func TestRescheduleSkipsConflictCheck(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com")
	store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusScheduled)
	blocked := store.addAppointment(patient.ID, doctor.ID, june1.AddDate(0, 0, 1), "09:00", models.StatusCancelled)
	lc := NewLifecycle(store)

	// Rescheduling the cancelled appointment duplicates the scheduled
	// pair; no conflict re-check runs on this path.
	updated, err := lc.Reschedule(context.Background(), RescheduleParams{
		AppointmentID: blocked.ID,
		Date:          june1,
		Time:          "10:00",
		Reason:        "back again",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, updated.Status)

	appts, err := store.FindAppointments(context.Background(), AppointmentFilter{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Status:    models.StatusScheduled,
	})
	require.NoError(t, err)
	assert.Len(t, appts, 2)
}

func TestUpdateStatus(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com")
	appt := store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusScheduled)
	lc := NewLifecycle(store)

	updated, err := lc.UpdateStatus(context.Background(), appt.ID, models.StatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestUpdateStatusRejectsInvalidValue(t *testing.T) {
	store := newFakeStore()
	lc := NewLifecycle(store)

	var invalid *InvalidArgumentError
	_, err := lc.UpdateStatus(context.Background(), "any", "postponed", "")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Invalid status value!", invalid.Message)
}

func TestUpdateStatusOwnershipCheck(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	stranger := store.addUser("Eve", "eve@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com")
	appt := store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusScheduled)
	store.records[patient.ID] = &models.PatientRecord{UserID: patient.ID}
	store.records[stranger.ID] = &models.PatientRecord{UserID: stranger.ID}
	lc := NewLifecycle(store)

	var notFound *NotFoundError

	// Caller without a patient record at all.
	_, err := lc.UpdateStatus(context.Background(), appt.ID, models.StatusCancelled, "nobody")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Patient", notFound.What)

	// Caller who is a patient but does not own the appointment.
	_, err = lc.UpdateStatus(context.Background(), appt.ID, models.StatusCancelled, stranger.ID)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Appointment", notFound.What)

	// The owner may transition it.
	updated, err := lc.UpdateStatus(context.Background(), appt.ID, models.StatusCancelled, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestDeleteAppointment(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com")
	appt := store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusScheduled)
	lc := NewLifecycle(store)

	require.NoError(t, lc.Delete(context.Background(), appt.ID))

	var notFound *NotFoundError
	err := lc.Delete(context.Background(), appt.ID)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Appointment", notFound.What)
}

func TestBookedTimeSlots(t *testing.T) {
	store := newFakeStore()
	patient := store.addUser("John Smith", "john@example.com")
	doctor := store.addUser("Grace Hopper", "grace@example.com", models.RoleDoctor)
	store.addRole(models.RolePatient)
	lc := NewLifecycle(store)

	appt, err := lc.Create(context.Background(), bookingParams(patient.ID, doctor.ID))
	require.NoError(t, err)

	times, err := lc.BookedTimeSlots(context.Background(), doctor.ID, june1)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)

	// Another date has no bookings.
	times, err = lc.BookedTimeSlots(context.Background(), doctor.ID, june1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, times)

	// Cancelled slots free up.
	_, err = lc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)
	times, err = lc.BookedTimeSlots(context.Background(), doctor.ID, june1)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestCreateSurfacesStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.findUserErr = errors.New("store down")
	lc := NewLifecycle(store)

	_, err := lc.Create(context.Background(), bookingParams("p", "d"))
	require.Error(t, err)

	var notFound *NotFoundError
	assert.False(t, errors.As(err, &notFound), "store failures are not NotFound")
}
