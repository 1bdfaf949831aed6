package handlers

import (
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DropdownHandler serves the lookup tables backing front-end dropdowns.
type DropdownHandler struct {
	DB *gorm.DB
}

// NewDropdownHandler creates a new DropdownHandler.
func NewDropdownHandler(db *gorm.DB) *DropdownHandler {
	return &DropdownHandler{DB: db}
}

// GetCountries lists all countries, name-sorted.
func (h *DropdownHandler) GetCountries(c *gin.Context) {
	var countries []models.Country
	if err := h.DB.Order("name asc").Find(&countries).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while fetching countries.")
		return
	}
	utils.Success(c, "Countries fetched successfully.", countries)
}

// CreateCountryRequest carries a new country entry.
type CreateCountryRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

// CreateCountry adds a country to the lookup table. Admin only.
func (h *DropdownHandler) CreateCountry(c *gin.Context) {
	var req CreateCountryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	country := models.Country{Name: utils.CapitalizeWords(req.Name), Code: req.Code}
	if err := h.DB.Create(&country).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while creating the country.")
		return
	}
	utils.Created(c, "Country created successfully.", country)
}

// GetMedicines lists medicines, optionally narrowed by kind, name-sorted.
func (h *DropdownHandler) GetMedicines(c *gin.Context) {
	query := h.DB.Order("name asc")
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var medicines []models.Medicine
	if err := query.Find(&medicines).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while fetching medicines.")
		return
	}
	utils.Success(c, "Medicines fetched successfully.", medicines)
}

// CreateMedicineRequest carries a new medicine entry.
type CreateMedicineRequest struct {
	Name        string `json:"name" binding:"required"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// CreateMedicine adds a medicine to the lookup table. Admin only.
func (h *DropdownHandler) CreateMedicine(c *gin.Context) {
	var req CreateMedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	kind := models.MedicineKind(req.Kind)
	if kind == "" {
		kind = models.KindMedication
	}
	switch kind {
	case models.KindMedication, models.KindRemedy, models.KindTherapy:
	default:
		utils.BadRequest(c, "Invalid medicine kind.")
		return
	}

	medicine := models.Medicine{
		Name:        utils.CapitalizeWords(req.Name),
		Kind:        kind,
		Description: req.Description,
	}
	if err := h.DB.Create(&medicine).Error; err != nil {
		utils.InternalServerError(c, "An error occurred while creating the medicine.")
		return
	}
	utils.Created(c, "Medicine created successfully.", medicine)
}
