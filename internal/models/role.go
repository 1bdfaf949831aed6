package models

// Well-known role names. The roles table is seeded with these on startup.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleDoctor     = "doctor"
	RolePatient    = "patient"
	RoleUser       = "user"
)

// Role is an immutable lookup entity referenced from User.Roles.
type Role struct {
	BaseModel
	Name  string `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Label string `gorm:"size:50;not null" json:"label"`
}
