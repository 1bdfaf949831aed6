package scheduling

import (
	"context"
	"errors"
	"time"

	"clinic-booking-server/internal/models"

	"github.com/google/uuid"
)

// Compile-time check that the fake satisfies the store contract.
var _ Store = (*fakeStore)(nil)

// fakeStore is an in-memory Store for exercising the scheduling components
// without a database. Per-method error hooks let tests inject failures.
type fakeStore struct {
	users   map[string]*models.User
	roles   map[string]*models.Role
	records map[string]*models.PatientRecord
	appts   []*models.Appointment

	findUserErr     error
	setRolesErr     error
	createApptErr   error
	setRolesCalls   int
	createRecCalls  int
	createApptCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[string]*models.User),
		roles:   make(map[string]*models.Role),
		records: make(map[string]*models.PatientRecord),
	}
}

func (f *fakeStore) addRole(name string) *models.Role {
	if r, ok := f.roles[name]; ok {
		return r
	}
	role := &models.Role{Name: name, Label: name}
	role.ID = uuid.New().String()
	f.roles[name] = role
	return role
}

func (f *fakeStore) addUser(name, email string, roleNames ...string) *models.User {
	user := &models.User{Name: name, Email: email, Display: true, Inforce: true}
	user.ID = uuid.New().String()
	for _, rn := range roleNames {
		user.Roles = append(user.Roles, *f.addRole(rn))
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeStore) addAppointment(patientID, doctorID string, date time.Time, slot string, status models.AppointmentStatus) *models.Appointment {
	appt := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: slot,
		ReasonForVisit:  "Checkup",
		Status:          status,
	}
	appt.ID = uuid.New().String()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.appts = append(f.appts, appt)
	return appt
}

func (f *fakeStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.findUserErr != nil {
		return nil, f.findUserErr
	}
	return f.users[id], nil
}

func (f *fakeStore) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeStore) SetUserRoles(ctx context.Context, user *models.User, roles []models.Role) error {
	f.setRolesCalls++
	if f.setRolesErr != nil {
		return f.setRolesErr
	}
	stored, ok := f.users[user.ID]
	if !ok {
		return errors.New("user not stored")
	}
	stored.Roles = roles
	user.Roles = roles
	return nil
}

func (f *fakeStore) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return f.roles[name], nil
}

func (f *fakeStore) FindPatientRecordByUserID(ctx context.Context, userID string) (*models.PatientRecord, error) {
	return f.records[userID], nil
}

func (f *fakeStore) FindPatientRecords(ctx context.Context, userIDs []string) ([]models.PatientRecord, error) {
	var out []models.PatientRecord
	for _, id := range userIDs {
		if r, ok := f.records[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreatePatientRecord(ctx context.Context, rec *models.PatientRecord) error {
	f.createRecCalls++
	rec.ID = uuid.New().String()
	f.records[rec.UserID] = rec
	return nil
}

func (f *fakeStore) FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	for _, appt := range f.appts {
		if appt.ID == id {
			f.join(appt)
			return appt, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range f.appts {
		if filter.PatientID != "" && appt.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && appt.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Status != "" && appt.Status != filter.Status {
			continue
		}
		if filter.DateEquals != nil && !appt.AppointmentDate.Equal(*filter.DateEquals) {
			continue
		}
		if filter.DateFrom != nil && appt.AppointmentDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && appt.AppointmentDate.After(*filter.DateTo) {
			continue
		}
		if filter.Joined {
			f.join(appt)
		}
		out = append(out, *appt)
	}
	return out, nil
}

func (f *fakeStore) DistinctPatientIDs(ctx context.Context, doctorID string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, appt := range f.appts {
		if appt.DoctorID != doctorID {
			continue
		}
		if _, ok := seen[appt.PatientID]; ok {
			continue
		}
		seen[appt.PatientID] = struct{}{}
		out = append(out, appt.PatientID)
	}
	return out, nil
}

func (f *fakeStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	f.createApptCalls++
	if f.createApptErr != nil {
		return f.createApptErr
	}
	appt.ID = uuid.New().String()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.appts = append(f.appts, appt)
	return nil
}

func (f *fakeStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	for i, stored := range f.appts {
		if stored.ID == appt.ID {
			appt.UpdatedAt = time.Now()
			f.appts[i] = appt
			return nil
		}
	}
	return errors.New("appointment not stored")
}

func (f *fakeStore) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	for i, stored := range f.appts {
		if stored.ID == id {
			f.appts = append(f.appts[:i], f.appts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) join(appt *models.Appointment) {
	if u, ok := f.users[appt.PatientID]; ok {
		appt.Patient = *u
	}
	if u, ok := f.users[appt.DoctorID]; ok {
		appt.Doctor = *u
	}
}
