package models

import "gorm.io/gorm"

// SeedRoles inserts the well-known roles if they are missing. Name is the
// unique key, so reruns are no-ops.
func SeedRoles(db *gorm.DB) error {
	roles := []Role{
		{Name: RoleSuperAdmin, Label: "Super Admin"},
		{Name: RoleAdmin, Label: "Admin"},
		{Name: RoleDoctor, Label: "Doctor"},
		{Name: RolePatient, Label: "Patient"},
		{Name: RoleUser, Label: "User"},
	}

	for _, role := range roles {
		var existing Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
