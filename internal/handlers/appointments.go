package handlers

import (
	"errors"
	"log"
	"math"
	"strconv"
	"time"

	"clinic-booking-server/internal/mailer"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/repository"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler exposes the booking lifecycle over HTTP.
type AppointmentHandler struct {
	DB        *gorm.DB
	Lifecycle *scheduling.Lifecycle
	Mailer    *mailer.Mailer
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, m *mailer.Mailer) *AppointmentHandler {
	store := repository.NewRosterStore(db)
	return &AppointmentHandler{
		DB:        db,
		Lifecycle: scheduling.NewLifecycle(store),
		Mailer:    m,
	}
}

// parseDateInput accepts the date shapes clients send for appointmentDate:
// ISO date, full RFC3339 timestamp, or DD/MM/YYYY.
func parseDateInput(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format: " + s)
}

// respondSchedulingError maps the scheduling error taxonomy onto HTTP
// statuses. Anything unrecognized becomes a 500 with a generic message so
// store internals never reach the client.
func respondSchedulingError(c *gin.Context, err error, fallback string) {
	var notFound *scheduling.NotFoundError
	var noMatch *scheduling.NoMatchError
	var conflict *scheduling.ConflictError
	var invalid *scheduling.InvalidArgumentError

	switch {
	case errors.As(err, &notFound):
		utils.NotFound(c, notFound.Error())
	case errors.As(err, &noMatch):
		utils.NotFound(c, noMatch.Error())
	case errors.As(err, &conflict):
		utils.Conflict(c, conflict.Error(), conflict.Existing)
	case errors.As(err, &invalid):
		utils.BadRequest(c, invalid.Error())
	default:
		log.Printf("scheduling error: %v", err)
		utils.InternalServerError(c, fallback)
	}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	PatientID       string `json:"patientId" binding:"required"`
	DoctorID        string `json:"doctorId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
	Notes           string `json:"notes"`
}

// CreateAppointment books a new appointment. 404 when the patient or doctor
// is missing, 409 with the blocking appointment when the pair already has a
// scheduled one.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := parseDateInput(req.AppointmentDate)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment date: "+err.Error())
		return
	}

	appt, err := h.Lifecycle.Create(c.Request.Context(), scheduling.CreateParams{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		respondSchedulingError(c, err, "An error occurred while creating the appointment.")
		return
	}

	view := scheduling.FormatAppointment(appt)

	// Confirmation email is best-effort; booking already succeeded.
	go func(email, doctor, date, slot string) {
		if email == "" {
			return
		}
		if err := h.Mailer.SendBookingConfirmation(email, doctor, date, slot); err != nil {
			log.Printf("sending booking confirmation: %v", err)
		}
	}(appt.Patient.Email, view.DoctorName, scheduling.FormatOnlyDate(appt.AppointmentDate), appt.AppointmentTime)

	c.JSON(201, gin.H{
		"success":          1,
		"message":          "Appointment created successfully",
		"dataAppointments": view,
	})
}

// CancelAppointmentRequest identifies the appointment to cancel.
type CancelAppointmentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// CancelAppointment sets the appointment to cancelled. Cancelling an
// already-cancelled or completed appointment succeeds.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	var req CancelAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Lifecycle.Cancel(c.Request.Context(), req.AppointmentID)
	if err != nil {
		respondSchedulingError(c, err, "An error occurred while cancelling the appointment.")
		return
	}

	c.JSON(200, gin.H{
		"success":          1,
		"message":          "Appointment cancelled successfully",
		"dataAppointments": scheduling.FormatAppointment(appt),
	})
}

// RescheduleAppointmentRequest represents the request body for rescheduling.
type RescheduleAppointmentRequest struct {
	AppointmentID   string `json:"appointmentId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DoctorID        string `json:"doctorId"`
	Reason          string `json:"reason"`
}

// RescheduleAppointment moves an appointment to a new date, time and
// optionally a new doctor, forcing it back to scheduled.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := parseDateInput(req.AppointmentDate)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment date: "+err.Error())
		return
	}

	appt, err := h.Lifecycle.Reschedule(c.Request.Context(), scheduling.RescheduleParams{
		AppointmentID: req.AppointmentID,
		Date:          date,
		Time:          req.Time,
		DoctorID:      req.DoctorID,
		Reason:        req.Reason,
	})
	if err != nil {
		respondSchedulingError(c, err, "An error occurred while rescheduling the appointment.")
		return
	}

	c.JSON(200, gin.H{
		"success":          1,
		"message":          "Appointment rescheduled successfully",
		"dataAppointments": scheduling.FormatAppointment(appt),
	})
}

// UpdateStatusRequest represents the request body for a status transition.
// UserID, when present, must be the patient the appointment belongs to.
type UpdateStatusRequest struct {
	UserID        string `json:"userId"`
	AppointmentID string `json:"appointmentId" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

// UpdateAppointmentStatus moves an appointment between scheduled, completed
// and cancelled. 400 on any other status value.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Lifecycle.UpdateStatus(c.Request.Context(), req.AppointmentID,
		models.AppointmentStatus(req.Status), req.UserID)
	if err != nil {
		respondSchedulingError(c, err, "An error occurred while updating the appointment status.")
		return
	}

	utils.Success(c, "Appointment status updated successfully!", appt)
}

// DeleteAppointmentRequest identifies the appointment to remove.
type DeleteAppointmentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// DeleteAppointment removes the appointment permanently.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	var req DeleteAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Lifecycle.Delete(c.Request.Context(), req.AppointmentID); err != nil {
		respondSchedulingError(c, err, "An error occurred while deleting the appointment.")
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}

// BookedSlotRequest asks for a doctor's taken times on a date.
type BookedSlotRequest struct {
	DoctorID        string `json:"doctorId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
}

// GetBookedTimeSlot returns the time strings of the doctor's scheduled
// appointments on the given date, for greying out slots in the picker.
func (h *AppointmentHandler) GetBookedTimeSlot(c *gin.Context) {
	var req BookedSlotRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := parseDateInput(req.AppointmentDate)
	if err != nil {
		utils.BadRequest(c, "Invalid appointment date: "+err.Error())
		return
	}

	times, err := h.Lifecycle.BookedTimeSlots(c.Request.Context(), req.DoctorID, date)
	if err != nil {
		respondSchedulingError(c, err, "Error fetching booked times")
		return
	}

	c.JSON(200, gin.H{
		"success":     1,
		"bookedTimes": times,
	})
}

// GetAllAppointments lists appointments of all patient-role users, paginated
// and sorted by the caller's query parameters.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		perPage = 10
	}
	sortBy := c.DefaultQuery("sort_by", "created_at")
	order := "asc"
	if c.DefaultQuery("orderBy", "asc") == "desc" {
		order = "desc"
	}
	switch sortBy {
	case "created_at", "updated_at", "appointment_date", "status":
	default:
		sortBy = "created_at"
	}

	var patientRole models.Role
	if err := h.DB.Where("name = ?", models.RolePatient).First(&patientRole).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient role not found.")
		} else {
			utils.InternalServerError(c, "An error occurred while fetching appointments.")
		}
		return
	}

	var patientIDs []string
	err = h.DB.Table("user_roles").
		Where("role_id = ?", patientRole.ID).
		Pluck("user_id", &patientIDs).Error
	if err != nil {
		utils.InternalServerError(c, "An error occurred while fetching appointments.")
		return
	}
	if len(patientIDs) == 0 {
		utils.NotFound(c, "No patients found.")
		return
	}

	var total int64
	if err := h.DB.Model(&models.Appointment{}).Where("patient_id IN ?", patientIDs).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while fetching appointments.")
		return
	}

	var appts []models.Appointment
	err = h.DB.Preload("Patient").Preload("Doctor").
		Where("patient_id IN ?", patientIDs).
		Order(sortBy + " " + order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&appts).Error
	if err != nil {
		utils.InternalServerError(c, "An error occurred while fetching appointments.")
		return
	}

	views := make([]scheduling.AppointmentView, 0, len(appts))
	for i := range appts {
		views = append(views, scheduling.FormatAppointment(&appts[i]))
	}

	c.JSON(200, gin.H{
		"success":            1,
		"dataAppointments":   views,
		"total_appointments": total,
		"total_pages":        int(math.Ceil(float64(total) / float64(perPage))),
		"current_page":       page,
		"itemsPerPage":       perPage,
	})
}
