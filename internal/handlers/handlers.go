package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hostelhq/hostel-api/internal/config"
	"github.com/hostelhq/hostel-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Charge       *ChargeHandler
	Payment      *PaymentHandler
	Building     *BuildingHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth),
		Charge:       NewChargeHandler(svcs.Property, svcs.ChargeStatus),
		Payment:      NewPaymentHandler(svcs.Payment, svcs.Report, cfg),
		Building:     NewBuildingHandler(svcs.Property, svcs.Report),
		Notification: NewNotificationHandler(svcs.Notification),
	}
}

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidFrequency):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNoActiveTenancy):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrAlreadyPaid), errors.Is(err, services.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidPassword):
		status = http.StatusUnauthorized
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
