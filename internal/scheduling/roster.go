package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clinic-booking-server/internal/models"
)

// Roster partitions a doctor's patients for a given day into those with a
// scheduled appointment inside that day and those seen before but not
// scheduled that day. The two sets are disjoint by construction.
type Roster struct {
	store Store
}

// NewRoster creates a Roster backed by store.
func NewRoster(store Store) *Roster {
	return &Roster{store: store}
}

// ScheduledPatients returns one composite record per scheduled appointment
// the doctor has inside day's UTC range. A patient booked twice on the same
// day yields two records.
func (r *Roster) ScheduledPatients(ctx context.Context, doctorID string, day time.Time) ([]PatientComposite, error) {
	start, end := UTCDayRange(day)

	appts, err := r.store.FindAppointments(ctx, AppointmentFilter{
		DoctorID: doctorID,
		Status:   models.StatusScheduled,
		DateFrom: &start,
		DateTo:   &end,
		Joined:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching scheduled appointments: %w", err)
	}

	composites := make([]PatientComposite, 0, len(appts))
	for i := range appts {
		appt := &appts[i]
		records, err := r.store.FindPatientRecords(ctx, []string{appt.PatientID})
		if err != nil {
			return nil, fmt.Errorf("fetching patient records: %w", err)
		}
		view := FormatAppointment(appt)
		composites = append(composites, FormatPatientComposite(&appt.Patient, records, []AppointmentView{view}))
	}
	return composites, nil
}

// NonScheduledPatients returns one composite record per patient who has ever
// had an appointment with the doctor but has none scheduled inside day's UTC
// range. The difference is over patient identity: a patient with several
// past appointments appears once, with an empty current-appointment list.
// Results are sorted by patient name for deterministic output.
func (r *Roster) NonScheduledPatients(ctx context.Context, doctorID string, day time.Time) ([]PatientComposite, error) {
	everIDs, err := r.store.DistinctPatientIDs(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("fetching appointed patients: %w", err)
	}

	start, end := UTCDayRange(day)
	todays, err := r.store.FindAppointments(ctx, AppointmentFilter{
		DoctorID: doctorID,
		Status:   models.StatusScheduled,
		DateFrom: &start,
		DateTo:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching scheduled appointments: %w", err)
	}

	scheduled := make(map[string]struct{}, len(todays))
	for _, appt := range todays {
		scheduled[appt.PatientID] = struct{}{}
	}

	remaining := make([]string, 0, len(everIDs))
	for _, id := range everIDs {
		if _, ok := scheduled[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == 0 {
		return []PatientComposite{}, nil
	}

	users, err := r.store.FindUsersByIDs(ctx, remaining)
	if err != nil {
		return nil, fmt.Errorf("fetching patients: %w", err)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })

	composites := make([]PatientComposite, 0, len(users))
	for i := range users {
		user := &users[i]
		records, err := r.store.FindPatientRecords(ctx, []string{user.ID})
		if err != nil {
			return nil, fmt.Errorf("fetching patient records: %w", err)
		}
		composites = append(composites, FormatPatientComposite(user, records, nil))
	}
	return composites, nil
}
