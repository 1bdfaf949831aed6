package scheduling

import (
	"context"
	"time"

	"clinic-booking-server/internal/models"
)

// AppointmentFilter narrows FindAppointments. Zero-valued fields are
// ignored. DateEquals matches the stored instant exactly (the booked-slot
// lookup); DateFrom/DateTo form an inclusive range on AppointmentDate.
type AppointmentFilter struct {
	PatientID  string
	DoctorID   string
	Status     models.AppointmentStatus
	DateEquals *time.Time
	DateFrom   *time.Time
	DateTo     *time.Time
	Joined     bool // preload patient and doctor
}

// Store is the roster document store the scheduling components run against.
// Single-record lookups return (nil, nil) when nothing matches; an error
// means the store itself failed.
type Store interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	SetUserRoles(ctx context.Context, user *models.User, roles []models.Role) error
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)

	FindPatientRecordByUserID(ctx context.Context, userID string) (*models.PatientRecord, error)
	FindPatientRecords(ctx context.Context, userIDs []string) ([]models.PatientRecord, error)
	CreatePatientRecord(ctx context.Context, rec *models.PatientRecord) error

	FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error)
	FindAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	DistinctPatientIDs(ctx context.Context, doctorID string) ([]string, error)
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	SaveAppointment(ctx context.Context, appt *models.Appointment) error
	DeleteAppointment(ctx context.Context, id string) (bool, error)
}
