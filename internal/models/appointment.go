package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ValidStatus reports whether s is one of the three appointment states.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booked visit. AppointmentDate is the calendar
// date stored as a UTC instant; AppointmentTime is the free-form time-of-day
// string shown to the user and is never folded into AppointmentDate.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID        string            `gorm:"size:36;index;not null" json:"doctorId"`
	AppointmentDate time.Time         `gorm:"not null" json:"appointmentDate"`
	AppointmentTime string            `gorm:"size:20;not null" json:"appointmentTime"`
	ReasonForVisit  string            `gorm:"size:255;not null" json:"reasonForVisit"`
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
