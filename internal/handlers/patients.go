package handlers

import (
	"errors"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PatientHandler exposes the clinic record-keeping surface: patient detail,
// case histories and additional-info entries.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// GetPatientDetails returns the patient's record with the joined person.
func (h *PatientHandler) GetPatientDetails(c *gin.Context) {
	userID := c.Param("userId")

	var rec models.PatientRecord
	if err := h.DB.Preload("User").First(&rec, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found!")
		} else {
			utils.InternalServerError(c, "An error occurred while fetching patient details.")
		}
		return
	}

	c.JSON(200, gin.H{
		"success": 1,
		"data": gin.H{
			"record":  rec,
			"patient": rec.User.Sanitize(),
		},
	})
}

// SaveCaseHistoryRequest carries one case note for a patient.
type SaveCaseHistoryRequest struct {
	PatientID string   `json:"patientId" binding:"required"`
	DoctorID  string   `json:"doctorId"`
	Symptoms  []string `json:"symptoms"`
	Notes     string   `json:"notes"`
}

// SaveCaseHistory stores a case note against an existing patient record.
func (h *PatientHandler) SaveCaseHistory(c *gin.Context) {
	var req SaveCaseHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var rec models.PatientRecord
	if err := h.DB.First(&rec, "user_id = ?", req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found!")
		} else {
			utils.InternalServerError(c, "An error occurred while saving the case history.")
		}
		return
	}

	history := models.CaseHistory{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Symptoms:  models.StringList(req.Symptoms),
		Notes:     utils.SentenceCase(req.Notes),
	}
	if err := h.DB.Create(&history).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while saving the case history.")
		return
	}

	utils.Created(c, "Case history saved successfully.", history)
}

// GetCaseHistoriesRequest identifies the patient to list notes for.
type GetCaseHistoriesRequest struct {
	PatientID string `json:"patientId" binding:"required"`
}

// GetCaseHistories lists all case notes of a patient, newest first.
func (h *PatientHandler) GetCaseHistories(c *gin.Context) {
	var req GetCaseHistoriesRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var histories []models.CaseHistory
	err := h.DB.Where("patient_id = ?", req.PatientID).
		Order("created_at desc").
		Find(&histories).Error
	if err != nil {
		utils.InternalServerError(c, "An error occurred while fetching case histories.")
		return
	}

	utils.Success(c, "Case histories fetched successfully.", histories)
}

// UpsertInfoRequest carries one additional-info entry. Key is optional; a
// keyed entry replaces the existing entry with the same key.
type UpsertInfoRequest struct {
	PatientID string                 `json:"patientId" binding:"required"`
	Key       string                 `json:"key"`
	Data      map[string]interface{} `json:"data" binding:"required"`
}

// UpsertPatientInfo merges an additional-info entry into the patient's
// record. The entry payload is an opaque bag and is stored as-is.
func (h *PatientHandler) UpsertPatientInfo(c *gin.Context) {
	var req UpsertInfoRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var rec models.PatientRecord
	if err := h.DB.First(&rec, "user_id = ?", req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found!")
		} else {
			utils.InternalServerError(c, "An error occurred while updating patient info.")
		}
		return
	}

	rec.MergeInfo(models.InfoEntry{Key: req.Key, Data: req.Data})
	if err := h.DB.Save(&rec).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while updating patient info.")
		return
	}

	utils.Success(c, "Patient info updated successfully.", rec)
}
