package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents any registered person: patient, doctor, admin or plain
// user, depending on the roles attached to it.
type User struct {
	BaseModel
	Name            string     `gorm:"size:150;not null" json:"name"`
	Email           string     `gorm:"uniqueIndex;size:320;not null" json:"email"`
	Password        string     `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	DateOfBirth     *time.Time `json:"dob,omitempty"`
	Gender          string     `gorm:"size:20" json:"gender"`
	MobileNo        string     `gorm:"size:20" json:"mobileNo"`
	PreviousMobiles StringList `gorm:"type:json" json:"previousMobiles,omitempty"`
	Address         string     `gorm:"size:255" json:"address,omitempty"`
	PreviousAddrs   StringList `gorm:"type:json" json:"previousAddresses,omitempty"`
	AboutMe         string     `gorm:"type:text" json:"aboutMe,omitempty"`
	Remarks         string     `gorm:"size:255" json:"remarks,omitempty"`
	Display         bool       `gorm:"default:true" json:"display"`
	Inforce         bool       `gorm:"default:true" json:"inforce"`
	EmailVerifiedAt   *time.Time `json:"emailVerifiedAt,omitempty"`
	VerificationToken string     `gorm:"size:255" json:"-"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`

	// Relations (not always preloaded)
	RefreshTokens       []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	DoctorAppointments  []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
	PatientAppointments []Appointment  `gorm:"foreignKey:PatientID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Roles       []string   `json:"roles"`
	DateOfBirth *time.Time `json:"dob,omitempty"`
	Gender      string     `json:"gender"`
	MobileNo    string     `json:"mobileNo"`
	Address     string     `json:"address,omitempty"`
	AboutMe     string     `json:"aboutMe,omitempty"`
	Display     bool       `json:"display"`
	Inforce     bool       `json:"inforce"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// HasRole reports whether the user's loaded role set contains name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the user's loaded roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Roles:       u.RoleNames(),
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		MobileNo:    u.MobileNo,
		Address:     u.Address,
		AboutMe:     u.AboutMe,
		Display:     u.Display,
		Inforce:     u.Inforce,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
