package models

// Country is a lookup entity for address and nationality dropdowns.
type Country struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Code string `gorm:"size:5" json:"code"`
}

// MedicineKind distinguishes the medicine lookup variants.
type MedicineKind string

const (
	KindMedication MedicineKind = "medication"
	KindRemedy     MedicineKind = "remedy"
	KindTherapy    MedicineKind = "therapy"
)

// Medicine is a lookup entity for prescription dropdowns.
type Medicine struct {
	BaseModel
	Name        string       `gorm:"size:150;not null;index" json:"name"`
	Kind        MedicineKind `gorm:"size:20;default:'medication'" json:"kind"`
	Description string       `gorm:"size:255" json:"description,omitempty"`
}
