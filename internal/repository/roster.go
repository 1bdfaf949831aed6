package repository

import (
	"context"
	"errors"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"

	"gorm.io/gorm"
)

// Compile-time check that RosterStore satisfies the scheduling contract.
var _ scheduling.Store = (*RosterStore)(nil)

// RosterStore is the GORM-backed implementation of scheduling.Store.
type RosterStore struct {
	DB *gorm.DB
}

// NewRosterStore creates a RosterStore over db.
func NewRosterStore(db *gorm.DB) *RosterStore {
	return &RosterStore{DB: db}
}

func (s *RosterStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Preload("Roles").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RosterStore) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserRoles replaces the user's role associations with the given set.
func (s *RosterStore) SetUserRoles(ctx context.Context, user *models.User, roles []models.Role) error {
	if err := s.DB.WithContext(ctx).Model(user).Association("Roles").Replace(roles); err != nil {
		return err
	}
	user.Roles = roles
	return nil
}

func (s *RosterStore) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := s.DB.WithContext(ctx).First(&role, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RosterStore) FindPatientRecordByUserID(ctx context.Context, userID string) (*models.PatientRecord, error) {
	var rec models.PatientRecord
	err := s.DB.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RosterStore) FindPatientRecords(ctx context.Context, userIDs []string) ([]models.PatientRecord, error) {
	var recs []models.PatientRecord
	if err := s.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *RosterStore) CreatePatientRecord(ctx context.Context, rec *models.PatientRecord) error {
	return s.DB.WithContext(ctx).Create(rec).Error
}

func (s *RosterStore) FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.DB.WithContext(ctx).Preload("Patient").Preload("Doctor").First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *RosterStore) FindAppointments(ctx context.Context, filter scheduling.AppointmentFilter) ([]models.Appointment, error) {
	query := s.DB.WithContext(ctx).Model(&models.Appointment{})

	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateEquals != nil {
		query = query.Where("appointment_date = ?", *filter.DateEquals)
	}
	if filter.DateFrom != nil && filter.DateTo != nil {
		query = query.Where("appointment_date BETWEEN ? AND ?", *filter.DateFrom, *filter.DateTo)
	}
	if filter.Joined {
		query = query.Preload("Patient").Preload("Doctor")
	}

	var appts []models.Appointment
	if err := query.Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *RosterStore) DistinctPatientIDs(ctx context.Context, doctorID string) ([]string, error) {
	var ids []string
	err := s.DB.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Distinct().
		Pluck("patient_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *RosterStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.DB.WithContext(ctx).Create(appt).Error
}

func (s *RosterStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.DB.WithContext(ctx).Save(appt).Error
}

func (s *RosterStore) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	result := s.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
