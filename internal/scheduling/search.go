package scheduling

import (
	"context"
	"fmt"
	"regexp"

	"clinic-booking-server/internal/models"
)

// Search runs free-text queries over bookings: appointment fields, the
// rendered appointment date, and the joined patient and doctor details.
type Search struct {
	store Store
}

// NewSearch creates a Search backed by store.
func NewSearch(store Store) *Search {
	return &Search{store: store}
}

// Bookings matches query as a case-insensitive substring over booking
// fields. Query text is untrusted, so its metacharacters are escaped before
// compiling; it is never interpreted as a user-supplied pattern. A query of
// the strict DD/MM/YYYY shape is additionally applied as a UTC day-range
// filter on the appointment date, narrowing the candidates before the text
// match. An empty result is reported as a NoMatchError.
func (s *Search) Bookings(ctx context.Context, query string) ([]AppointmentView, error) {
	if query == "" {
		return nil, &InvalidArgumentError{Message: "Search query is required."}
	}

	filter := AppointmentFilter{Joined: true}
	if start, end, ok := ParseStrictDate(query); ok {
		filter.DateFrom = &start
		filter.DateTo = &end
	}

	appts, err := s.store.FindAppointments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching appointments: %w", err)
	}

	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return nil, &InvalidArgumentError{Message: "Search query is not usable."}
	}

	results := make([]AppointmentView, 0)
	for i := range appts {
		appt := &appts[i]
		if matchesBooking(pattern, appt) {
			results = append(results, FormatAppointment(appt))
		}
	}

	if len(results) == 0 {
		return nil, &NoMatchError{Message: "No appointments found matching the query."}
	}
	return results, nil
}

// matchesBooking checks the query pattern against every searchable field of
// the appointment and its joined people.
func matchesBooking(pattern *regexp.Regexp, appt *models.Appointment) bool {
	fields := []string{
		appt.ReasonForVisit,
		string(appt.Status),
		FormatOnlyDate(appt.AppointmentDate),
		appt.AppointmentTime,
	}
	fields = append(fields, personFields(&appt.Patient)...)
	fields = append(fields, personFields(&appt.Doctor)...)

	for _, field := range fields {
		if field != "" && pattern.MatchString(field) {
			return true
		}
	}
	return false
}

func personFields(user *models.User) []string {
	fields := []string{user.Name, user.Gender, user.MobileNo, user.Email}
	if user.DateOfBirth != nil {
		fields = append(fields, FormatOnlyDate(*user.DateOfBirth))
	}
	return fields
}
