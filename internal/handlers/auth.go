package handlers

import (
	"errors"
	"log"
	"time"

	"clinic-booking-server/internal/config"
	"clinic-booking-server/internal/mailer"
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and token plumbing.
type AuthHandler struct {
	DB     *gorm.DB
	Config *config.Config
	Mailer *mailer.Mailer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, m *mailer.Mailer) *AuthHandler {
	return &AuthHandler{DB: db, Config: cfg, Mailer: m}
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Gender   string `json:"gender" binding:"required"`
	MobileNo string `json:"mobileNo" binding:"required"`
	Dob      string `json:"dob"`
}

// Register creates a new account with the generic user role and sends the
// verification email.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "A user with this email already exists.")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "An error occurred while registering.")
		return
	}

	user := models.User{
		Name:              req.Name,
		Email:             req.Email,
		Gender:            req.Gender,
		MobileNo:          req.MobileNo,
		Display:           true,
		Inforce:           true,
		VerificationToken: uuid.New().String(),
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
		utils.InternalServerError(c, "An error occurred while registering.")
		return
	}

	var userRole models.Role
	if err := h.DB.Where("name = ?", models.RoleUser).First(&userRole).Error; err == nil {
		user.Roles = []models.Role{userRole}
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user.")
		return
	}

	link := h.Config.AppURL + "/api/v1/auth/verify-email?token=" + user.VerificationToken
	go func(email, link string) {
		if err := h.Mailer.SendVerificationEmail(email, link); err != nil {
			log.Printf("sending verification email: %v", err)
		}
	}(user.Email, link)

	utils.Created(c, "User registered successfully. Please verify your email.", user.Sanitize())
}

// VerifyEmail marks the account matching the token as verified.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.BadRequest(c, "Verification token is required.")
		return
	}

	var user models.User
	if err := h.DB.Where("verification_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Verification token not found!")
		} else {
			utils.InternalServerError(c, "An error occurred while verifying the email.")
		}
		return
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	user.VerificationToken = ""
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while verifying the email.")
		return
	}

	utils.Success(c, "Email verified successfully.", nil)
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the token pair and the sanitized user.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// Login authenticates a user and issues an access/refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Preload("Roles").Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid email or password.")
		} else {
			utils.InternalServerError(c, "An error occurred while logging in.")
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password.")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, h.Config)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens.")
		return
	}

	record := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(time.Duration(h.Config.JWTRefreshExpirationHours) * time.Hour),
	}
	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to persist refresh token.")
		return
	}

	utils.Success(c, "Logged in successfully.", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Sanitize(),
	})
}

// RefreshTokenRequest carries the refresh token to exchange.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken validates a refresh token and issues a fresh pair, revoking
// the token it replaces.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Config.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	var stored models.RefreshToken
	err = h.DB.Where("token = ? AND user_id = ? AND is_revoked = ?", req.RefreshToken, claims.UserID, false).
		First(&stored).Error
	if err != nil {
		utils.Unauthorized(c, "Refresh token not recognized.")
		return
	}
	if time.Now().After(stored.ExpiresAt) {
		utils.Unauthorized(c, "Refresh token expired.")
		return
	}

	var user models.User
	if err := h.DB.Preload("Roles").First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.Unauthorized(c, "User no longer exists.")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, h.Config)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens.")
		return
	}

	stored.IsRevoked = true
	if err := h.DB.Save(&stored).Error; err != nil {
		utils.InternalServerError(c, "Failed to rotate refresh token.")
		return
	}
	replacement := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(time.Duration(h.Config.JWTRefreshExpirationHours) * time.Hour),
	}
	if err := h.DB.Create(&replacement).Error; err != nil {
		utils.InternalServerError(c, "Failed to persist refresh token.")
		return
	}

	utils.Success(c, "Token refreshed.", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout revokes all active refresh tokens of the authenticated user.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	err := h.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
	if err != nil {
		utils.InternalServerError(c, "An error occurred while logging out.")
		return
	}

	utils.Success(c, "Logged out successfully.", nil)
}

// GetProfile returns the authenticated user's sanitized profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.Preload("Roles").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found!")
		} else {
			utils.InternalServerError(c, "An error occurred while fetching the profile.")
		}
		return
	}

	utils.Success(c, "Profile fetched successfully.", user.Sanitize())
}

// UpdateProfileRequest carries the profile fields a user may change.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	MobileNo string `json:"mobileNo"`
	Address  string `json:"address"`
	AboutMe  string `json:"aboutMe"`
}

// UpdateProfile updates the caller's own record. Replaced mobile numbers
// and addresses are kept in their history lists.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Preload("Roles").First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found!")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
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
	if req.AboutMe != "" {
		user.AboutMe = req.AboutMe
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while updating the profile.")
		return
	}

	utils.Success(c, "Profile updated successfully.", user.Sanitize())
}
