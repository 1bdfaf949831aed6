package handlers

import (
	"clinic-booking-server/internal/repository"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RosterHandler exposes the scheduled/non-scheduled patient partition and
// the free-text booking search.
type RosterHandler struct {
	Roster *scheduling.Roster
	Search *scheduling.Search
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(db *gorm.DB) *RosterHandler {
	store := repository.NewRosterStore(db)
	return &RosterHandler{
		Roster: scheduling.NewRoster(store),
		Search: scheduling.NewSearch(store),
	}
}

// PartitionRequest names the doctor and the civil day to partition on.
type PartitionRequest struct {
	DoctorID    string `json:"doctorId" binding:"required"`
	CurrentDate string `json:"currentDate" binding:"required"`
}

// GetScheduledPatients returns one composite record per appointment the
// doctor has scheduled inside the given day.
func (h *RosterHandler) GetScheduledPatients(c *gin.Context) {
	var req PartitionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	day, err := parseDateInput(req.CurrentDate)
	if err != nil {
		utils.BadRequest(c, "Invalid current date: "+err.Error())
		return
	}

	patients, err := h.Roster.ScheduledPatients(c.Request.Context(), req.DoctorID, day)
	if err != nil {
		respondSchedulingError(c, err, "An error occurred while fetching scheduled patients.")
		return
	}

	c.JSON(200, gin.H{
		"success":               1,
		"patientsScheduledData": patients,
	})
}

// GetNonScheduledPatients returns the doctor's ever-appointed patients who
// have nothing scheduled inside the given day, one record per patient.
func (h *RosterHandler) GetNonScheduledPatients(c *gin.Context) {
	var req PartitionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	day, err := parseDateInput(req.CurrentDate)
	if err != nil {
		utils.BadRequest(c, "Invalid current date: "+err.Error())
		return
	}

	patients, err := h.Roster.NonScheduledPatients(c.Request.Context(), req.DoctorID, day)
	if err != nil {
		respondSchedulingError(c, err, "An error occurred while fetching non-scheduled patients.")
		return
	}

	c.JSON(200, gin.H{
		"success":                  1,
		"patientsNonScheduledData": patients,
	})
}

// SearchBookingRequest carries the free-text query.
type SearchBookingRequest struct {
	Query string `json:"query"`
}

// SearchBookingDetails runs the free-text booking search. 400 on an empty
// query, 404 when nothing matches.
func (h *RosterHandler) SearchBookingDetails(c *gin.Context) {
	var req SearchBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.Query == "" {
		utils.BadRequest(c, "Search query is required.")
		return
	}

	results, err := h.Search.Bookings(c.Request.Context(), req.Query)
	if err != nil {
		respondSchedulingError(c, err, "An error occurred while searching for appointments.")
		return
	}

	c.JSON(200, gin.H{
		"success":            1,
		"searchAppointments": results,
	})
}
