package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hostelhq/hostel-api/internal/middleware"
	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/internal/services"
)

type ChargeHandler struct {
	propertyService *services.PropertyService
	statusService   *services.ChargeStatusService
}

func NewChargeHandler(propertyService *services.PropertyService, statusService *services.ChargeStatusService) *ChargeHandler {
	return &ChargeHandler{propertyService: propertyService, statusService: statusService}
}

type CreateChargeRequest struct {
	Name      string `json:"name" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	Frequency string `json:"frequency" binding:"required"`
}

// @Summary Create Charge
// @Description Adds a recurring charge to a building
// @Tags Charges
// @Accept json
// @Produce json
// @Param building_id path int true "Building ID"
// @Param request body CreateChargeRequest true "Charge details"
// @Success 201 {object} models.Charge
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /buildings/{building_id}/charges [post]
func (h *ChargeHandler) Create(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
		return
	}

	var req CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	charge := &models.Charge{
		BuildingID: uint(buildingID),
		Name:       req.Name,
		Amount:     req.Amount,
		Frequency:  req.Frequency,
	}
	if err := h.propertyService.CreateCharge(c.Request.Context(), charge); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, charge)
}

// @Summary List Charges
// @Description Lists the charges of a building
// @Tags Charges
// @Produce json
// @Param building_id path int true "Building ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /buildings/{building_id}/charges [get]
func (h *ChargeHandler) IndexByBuilding(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
		return
	}

	charges, err := h.propertyService.ListCharges(c.Request.Context(), uint(buildingID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"charges": charges})
}

// @Summary Charge Payment Status
// @Description Reconciles the caller's payment ledger for a charge into paid and unpaid periods
// @Tags Charges
// @Produce json
// @Param charge_id path int true "Charge ID"
// @Param frequency query string false "Preview frequency (monthly|yearly)"
// @Param user_id query int false "Tenant to inspect (landlord/agent only)"
// @Success 200 {object} services.ChargePaymentStatus
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /charges/{charge_id}/status [get]
func (h *ChargeHandler) Status(c *gin.Context) {
	chargeID, err := strconv.ParseUint(c.Param("charge_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid charge ID"})
		return
	}

	userID := middleware.GetUserID(c)
	if param := c.Query("user_id"); param != "" && middleware.IsManager(c) {
		target, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		userID = uint(target)
	}

	status, err := h.statusService.GetChargePaymentStatus(c.Request.Context(), userID, uint(chargeID), c.Query("frequency"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
