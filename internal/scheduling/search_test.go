package scheduling

import (
	"context"
	"testing"
	"time"

	"clinic-booking-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture() (*fakeStore, *Search) {
	store := newFakeStore()
	doctor := store.addUser("Grace Hopper", "grace@example.com", models.RoleDoctor)
	patient := store.addUser("John Smith", "john@example.com", models.RolePatient)
	patient.Gender = "Male"
	patient.MobileNo = "0412345678"

	appt := store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusScheduled)
	appt.ReasonForVisit = "Knee pain"

	other := store.addUser("Mary Jones", "mary@example.com", models.RolePatient)
	store.addAppointment(other.ID, doctor.ID, june1.AddDate(0, 0, 14), "14:30", models.StatusCompleted)

	return store, NewSearch(store)
}

func TestSearchRequiresQuery(t *testing.T) {
	_, search := searchFixture()

	var invalid *InvalidArgumentError
	_, err := search.Bookings(context.Background(), "")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Search query is required.", invalid.Message)
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	_, search := searchFixture()

	cases := []struct {
		name  string
		query string
		want  string
	}{
		{"patient name substring", "smith", "John Smith"},
		{"case-insensitive reason", "KNEE", "John Smith"},
		{"mobile number", "0412", "John Smith"},
		{"status", "completed", "Mary Jones"},
		{"time of day", "14:30", "Mary Jones"},
		{"doctor email", "grace@", "John Smith"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results, err := search.Bookings(context.Background(), tc.query)
			require.NoError(t, err)
			require.NotEmpty(t, results)
			assert.Equal(t, tc.want, results[0].PatientName)
		})
	}
}

func TestSearchByDoctorMatchesAllBookings(t *testing.T) {
	_, search := searchFixture()

	// Both appointments share the doctor, so a doctor-name query returns
	// both.
	results, err := search.Bookings(context.Background(), "hopper")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchNoMatch(t *testing.T) {
	_, search := searchFixture()

	var noMatch *NoMatchError
	_, err := search.Bookings(context.Background(), "zzzz")
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, "No appointments found matching the query.", noMatch.Message)
}

func TestSearchEscapesMetacharacters(t *testing.T) {
	store, search := searchFixture()
	doctor := store.addUser("Ada Lovelace", "ada@example.com", models.RoleDoctor)
	patient := store.addUser("Plus Person", "plus@example.com", models.RolePatient)
	appt := store.addAppointment(patient.ID, doctor.ID, june1, "09:00", models.StatusScheduled)
	appt.ReasonForVisit = "Follow-up (a+b) review"

	// "a+b" must match literally, not as a repetition pattern.
	results, err := search.Bookings(context.Background(), "a+b")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Plus Person", results[0].PatientName)

	// ".*" matches nothing literal rather than everything.
	var noMatch *NoMatchError
	_, err = search.Bookings(context.Background(), ".*")
	require.ErrorAs(t, err, &noMatch)
}

func TestSearchStrictDateNarrowsByDay(t *testing.T) {
	_, search := searchFixture()

	results, err := search.Bookings(context.Background(), "01/06/2025")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "John Smith", results[0].PatientName)

	results, err = search.Bookings(context.Background(), "15/06/2025")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mary Jones", results[0].PatientName)
}

func TestSearchStrictDateRequiresExactShape(t *testing.T) {
	_, search := searchFixture()

	// A loose date string is not a day filter; it falls through to the
	// text match and finds nothing.
	var noMatch *NoMatchError
	_, err := search.Bookings(context.Background(), "2025-06-01")
	require.ErrorAs(t, err, &noMatch)
}

func TestSearchMatchesRenderedDate(t *testing.T) {
	store := newFakeStore()
	doctor := store.addUser("Grace Hopper", "grace@example.com", models.RoleDoctor)
	patient := store.addUser("John Smith", "john@example.com", models.RolePatient)
	dob := time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC)
	patient.DateOfBirth = &dob
	store.addAppointment(patient.ID, doctor.ID, june1, "10:00", models.StatusScheduled)

	search := NewSearch(store)

	// The patient's date of birth is matched against its rendered
	// DD/MM/YYYY form. A partial date is not the strict shape, so no day
	// filter applies and the text match does the work.
	results, err := search.Bookings(context.Background(), "05/1990")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "John Smith", results[0].PatientName)
}
