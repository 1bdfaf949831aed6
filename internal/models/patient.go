package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a JSON-encoded list of strings stored in a single column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// InfoEntry is a free-form additional-info item. Entries carrying a key are
// merged by that key; keyless entries are appended in order.
type InfoEntry struct {
	Key  string                 `json:"key,omitempty"`
	Data map[string]interface{} `json:"data"`
}

// InfoList is a JSON column of InfoEntry values.
type InfoList []InfoEntry

func (l InfoList) Value() (driver.Value, error) {
	if l == nil {
		l = InfoList{}
	}
	return json.Marshal(l)
}

func (l *InfoList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// VisitEntry is one denormalized visit in a patient's history.
type VisitEntry struct {
	DoctorID     string    `json:"doctorId"`
	VisitDate    time.Time `json:"visitDate"`
	Reason       string    `json:"reason,omitempty"`
	Prescription string    `json:"prescription,omitempty"`
}

// VisitList is a JSON column of VisitEntry values.
type VisitList []VisitEntry

func (l VisitList) Value() (driver.Value, error) {
	if l == nil {
		l = VisitList{}
	}
	return json.Marshal(l)
}

func (l *VisitList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}

// PatientRecord is the clinic record-keeping extension of a User who has
// ever been booked. It is created lazily on first booking, keyed by the
// user's id, and never deleted once created.
type PatientRecord struct {
	BaseModel
	UserID          string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	MedicalHistory  StringList `gorm:"type:json" json:"medicalHistory"`
	Notes           string     `gorm:"type:text" json:"notes"`
	AddlInfo        InfoList   `gorm:"type:json" json:"addlInfo"`
	VisitHistory    VisitList  `gorm:"type:json" json:"visitHistory"`
	NextAppointment *time.Time `json:"nextAppointment,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MergeInfo upserts an additional-info entry. An entry with a key replaces
// the existing entry carrying the same key; keyless entries are appended.
func (r *PatientRecord) MergeInfo(entry InfoEntry) {
	if entry.Key != "" {
		for i, existing := range r.AddlInfo {
			if existing.Key == entry.Key {
				r.AddlInfo[i] = entry
				return
			}
		}
	}
	r.AddlInfo = append(r.AddlInfo, entry)
}

// CaseHistory is one saved case note for a patient.
type CaseHistory struct {
	BaseModel
	PatientID string     `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID  string     `gorm:"size:36;index" json:"doctorId"`
	Symptoms  StringList `gorm:"type:json" json:"symptoms"`
	Notes     string     `gorm:"type:text" json:"notes"`

	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
