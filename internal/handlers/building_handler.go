package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hostelhq/hostel-api/internal/middleware"
	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/internal/services"
)

type BuildingHandler struct {
	propertyService *services.PropertyService
	reportService   *services.ReportService
}

func NewBuildingHandler(propertyService *services.PropertyService, reportService *services.ReportService) *BuildingHandler {
	return &BuildingHandler{propertyService: propertyService, reportService: reportService}
}

type CreateBuildingRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// @Summary Create Building
// @Description Registers a building owned by the calling landlord
// @Tags Buildings
// @Accept json
// @Produce json
// @Param request body CreateBuildingRequest true "Building details"
// @Success 201 {object} models.Building
// @Security BearerAuth
// @Router /buildings [post]
func (h *BuildingHandler) Create(c *gin.Context) {
	var req CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	building := &models.Building{
		LandlordUserID: middleware.GetUserID(c),
		Name:           req.Name,
		Address:        req.Address,
	}
	if err := h.propertyService.CreateBuilding(c.Request.Context(), building); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, building)
}

// @Summary List Buildings
// @Description Lists buildings owned by the calling landlord
// @Tags Buildings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /buildings [get]
func (h *BuildingHandler) Index(c *gin.Context) {
	buildings, err := h.propertyService.ListByLandlord(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"buildings": buildings})
}

// @Summary Get Building
// @Description Get a building with its rooms and charges
// @Tags Buildings
// @Produce json
// @Param building_id path int true "Building ID"
// @Success 200 {object} models.Building
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /buildings/{building_id} [get]
func (h *BuildingHandler) Show(c *gin.Context) {
	buildingID, ok := h.buildingParam(c)
	if !ok {
		return
	}

	building, err := h.propertyService.GetBuilding(c.Request.Context(), buildingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, building)
}

type CreateRoomRequest struct {
	Label    string `json:"label" binding:"required"`
	Capacity int    `json:"capacity"`
}

// @Summary Create Room
// @Description Adds a room to a building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param building_id path int true "Building ID"
// @Param request body CreateRoomRequest true "Room details"
// @Success 201 {object} models.Room
// @Security BearerAuth
// @Router /buildings/{building_id}/rooms [post]
func (h *BuildingHandler) CreateRoom(c *gin.Context) {
	buildingID, ok := h.buildingParam(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := &models.Room{
		BuildingID: buildingID,
		Label:      req.Label,
		Capacity:   req.Capacity,
	}
	if err := h.propertyService.CreateRoom(c.Request.Context(), room); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

type CreateTenancyRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	RoomID    uint   `json:"room_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
}

// @Summary Create Tenancy
// @Description Moves a tenant into a room; the start date anchors billing periods
// @Tags Buildings
// @Accept json
// @Produce json
// @Param request body CreateTenancyRequest true "Tenancy details"
// @Success 201 {object} models.Tenancy
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /tenancies [post]
func (h *BuildingHandler) CreateTenancy(c *gin.Context) {
	var req CreateTenancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	tenancy := &models.Tenancy{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		StartDate: startDate,
	}
	if err := h.propertyService.CreateTenancy(c.Request.Context(), tenancy); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tenancy)
}

// @Summary End Tenancy
// @Description Deactivates a tenancy and frees its room
// @Tags Buildings
// @Produce json
// @Param tenancy_id path int true "Tenancy ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /tenancies/{tenancy_id}/end [post]
func (h *BuildingHandler) EndTenancy(c *gin.Context) {
	tenancyID, err := strconv.ParseUint(c.Param("tenancy_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenancy ID"})
		return
	}

	if err := h.propertyService.EndTenancy(c.Request.Context(), uint(tenancyID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

// @Summary Building Arrears
// @Description Reconciles every active tenant of the building and returns outstanding totals
// @Tags Buildings
// @Produce json
// @Param building_id path int true "Building ID"
// @Success 200 {object} services.BuildingArrearsReport
// @Security BearerAuth
// @Router /buildings/{building_id}/arrears [get]
func (h *BuildingHandler) Arrears(c *gin.Context) {
	buildingID, ok := h.buildingParam(c)
	if !ok {
		return
	}

	report, err := h.reportService.BuildingArrears(c.Request.Context(), buildingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// @Summary Building Arrears Spreadsheet
// @Description Downloads the arrears report as an XLSX file
// @Tags Buildings
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param building_id path int true "Building ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /buildings/{building_id}/arrears.xlsx [get]
func (h *BuildingHandler) ArrearsXLSX(c *gin.Context) {
	buildingID, ok := h.buildingParam(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.BuildingArrearsXLSX(c.Request.Context(), buildingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *BuildingHandler) buildingParam(c *gin.Context) (uint, bool) {
	buildingID, err := strconv.ParseUint(c.Param("building_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
		return 0, false
	}
	return uint(buildingID), true
}
