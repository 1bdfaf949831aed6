package handlers

import (
	"errors"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler handles user management requests.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Gender   string   `json:"gender" binding:"required"`
	MobileNo string   `json:"mobileNo" binding:"required"`
	Dob      string   `json:"dob"`
	Roles    []string `json:"roles"`
}

// CreateUser creates a user with an explicit role set. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Gender:   req.Gender,
		MobileNo: req.MobileNo,
		Display:  true,
		Inforce:  true,
	}
	if req.Dob != "" {
		dob, err := parseDateInput(req.Dob)
		if err != nil {
			utils.BadRequest(c, "Invalid date of birth: "+err.Error())
			return
		}
		user.DateOfBirth = &dob
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to create user.")
		return
	}

	roleNames := req.Roles
	if len(roleNames) == 0 {
		roleNames = []string{models.RoleUser}
	}
	var roles []models.Role
	if err := h.DB.Where("name IN ?", roleNames).Find(&roles).Error; err != nil {
		utils.InternalServerError(c, "Failed to resolve roles.")
		return
	}
	if len(roles) != len(roleNames) {
		utils.BadRequest(c, "One or more roles do not exist.")
		return
	}
	user.Roles = roles

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user.")
		return
	}

	utils.Created(c, "User created successfully.", user.Sanitize())
}

// GetUsers lists all users. Admin only.
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Preload("Roles").Find(&users).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while fetching users.")
		return
	}

	sanitized := make([]models.UserSanitized, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitize())
	}
	utils.Success(c, "Users fetched successfully.", sanitized)
}

// GetUserByID returns one user by id. Admin only.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.Preload("Roles").First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found!")
		} else {
			utils.InternalServerError(c, "An error occurred while fetching the user.")
		}
		return
	}

	utils.Success(c, "User fetched successfully.", user.Sanitize())
}

// UpdateUserRequest represents the request body for updating a user.
type UpdateUserRequest struct {
	Name     string   `json:"name"`
	Gender   string   `json:"gender"`
	MobileNo string   `json:"mobileNo"`
	Address  string   `json:"address"`
	Remarks  string   `json:"remarks"`
	Roles    []string `json:"roles"`
}

// UpdateUser updates a user's fields and, when roles are supplied, replaces
// the role set. Replaced contact details are pushed onto their histories.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Preload("Roles").First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found!")
		} else {
			utils.InternalServerError(c, "An error occurred while updating the user.")
		}
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.MobileNo != "" && req.MobileNo != user.MobileNo {
		if user.MobileNo != "" {
			user.PreviousMobiles = append(user.PreviousMobiles, user.MobileNo)
		}
		user.MobileNo = req.MobileNo
	}
	if req.Address != "" && req.Address != user.Address {
		if user.Address != "" {
			user.PreviousAddrs = append(user.PreviousAddrs, user.Address)
		}
		user.Address = req.Address
	}
	if req.Remarks != "" {
		user.Remarks = req.Remarks
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while updating the user.")
		return
	}

	if len(req.Roles) > 0 {
		var roles []models.Role
		if err := h.DB.Where("name IN ?", req.Roles).Find(&roles).Error; err != nil {
			utils.InternalServerError(c, "Failed to resolve roles.")
			return
		}
		if len(roles) != len(req.Roles) {
			utils.BadRequest(c, "One or more roles do not exist.")
			return
		}
		if err := h.DB.Model(&user).Association("Roles").Replace(roles); err != nil {
			utils.InternalServerError(c, "Failed to update roles.")
			return
		}
		user.Roles = roles
	}

	utils.Success(c, "User updated successfully.", user.Sanitize())
}

// DeleteUser hides a user instead of removing the row: display and inforce
// are cleared so the account drops out of listings but stays referenced by
// its appointments and records.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found!")
		} else {
			utils.InternalServerError(c, "An error occurred while deleting the user.")
		}
		return
	}

	user.Display = false
	user.Inforce = false
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while deleting the user.")
		return
	}

	utils.Success(c, "User deleted successfully.", nil)
}

// GetDoctors lists all users holding the doctor role.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.usersWithRole(models.RoleDoctor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor role not found.")
		} else {
			utils.InternalServerError(c, "An error occurred while fetching doctors.")
		}
		return
	}

	doctorsData := make([]gin.H, 0, len(doctors))
	for _, dr := range doctors {
		doctorsData = append(doctorsData, gin.H{
			"id":          dr.ID,
			"doctor_name": dr.Name,
			"display":     dr.Display,
			"inforce":     dr.Inforce,
			"remarks":     dr.Remarks,
			"created_at":  dr.CreatedAt,
			"updated_at":  dr.UpdatedAt,
		})
	}

	c.JSON(200, gin.H{
		"success":     1,
		"doctorsData": doctorsData,
	})
}

// GetPatients lists all users holding the patient role.
func (h *UserHandler) GetPatients(c *gin.Context) {
	patients, err := h.usersWithRole(models.RolePatient)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient role not found.")
		} else {
			utils.InternalServerError(c, "An error occurred while fetching patients.")
		}
		return
	}

	sanitized := make([]models.UserSanitized, 0, len(patients))
	for i := range patients {
		sanitized = append(sanitized, patients[i].Sanitize())
	}
	utils.Success(c, "Patients fetched successfully.", sanitized)
}

// usersWithRole returns all users attached to the named role.
func (h *UserHandler) usersWithRole(roleName string) ([]models.User, error) {
	var role models.Role
	if err := h.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := h.DB.Preload("Roles").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role_id = ?", role.ID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
