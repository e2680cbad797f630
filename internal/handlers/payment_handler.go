package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hostelhq/hostel-api/internal/config"
	"github.com/hostelhq/hostel-api/internal/gateway"
	"github.com/hostelhq/hostel-api/internal/middleware"
	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/internal/services"
	"github.com/hostelhq/hostel-api/pkg/logger"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	reportService  *services.ReportService
	config         *config.Config
}

func NewPaymentHandler(paymentService *services.PaymentService, reportService *services.ReportService, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, reportService: reportService, config: cfg}
}

type CreatePaymentRequest struct {
	Frequency string `json:"frequency" binding:"required"`
	Month     *int   `json:"month"`
	Year      int    `json:"year"`
}

// @Summary Initiate Payment
// @Description Opens a pending payment for one period of a charge and returns the checkout URL
// @Tags Payments
// @Accept json
// @Produce json
// @Param charge_id path int true "Charge ID"
// @Param request body CreatePaymentRequest true "Payment details"
// @Success 201 {object} services.PaymentIntent
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /charges/{charge_id}/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	chargeID, err := strconv.ParseUint(c.Param("charge_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid charge ID"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sel *services.PeriodSelection
	if req.Year != 0 {
		sel = &services.PeriodSelection{Month: req.Month, Year: req.Year}
	}

	userID := middleware.GetUserID(c)
	intent, err := h.paymentService.CreatePaymentRecord(c.Request.Context(), userID, uint(chargeID), req.Frequency, sel)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if intent.Reused {
		status = http.StatusOK
	}
	c.JSON(status, intent)
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	} `json:"data"`
}

// @Summary Payment Webhook
// @Description Receives gateway payment notifications (HMAC-signed)
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read body"})
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if !gateway.VerifySignature(body, signature, h.config.PaystackSecretKey) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	ctx := c.Request.Context()
	switch event.Event {
	case "charge.success":
		if _, err := h.paymentService.FinalizeSuccessfulPayment(ctx, event.Data.Reference); err != nil {
			logger.Error("Webhook finalize failed", "reference", event.Data.Reference, "error", err)
			respondError(c, err)
			return
		}
	case "charge.failed":
		if _, err := h.paymentService.MarkPaymentFailed(ctx, event.Data.Reference); err != nil {
			logger.Error("Webhook fail transition failed", "reference", event.Data.Reference, "error", err)
			respondError(c, err)
			return
		}
	default:
		logger.Debug("Ignoring webhook event", "event", event.Event)
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

// @Summary Verify Payment
// @Description Asks the gateway for the state of a payment attempt and applies it
// @Tags Payments
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} models.PaymentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/verify/{reference} [get]
func (h *PaymentHandler) Verify(c *gin.Context) {
	reference := c.Param("reference")

	payment, err := h.paymentService.VerifyAndFinalize(c.Request.Context(), reference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment.ToResponse())
}

// @Summary Get Payment
// @Description Get a payment by ID
// @Tags Payments
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} models.PaymentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{payment_id} [get]
func (h *PaymentHandler) Show(c *gin.Context) {
	payment, ok := h.loadOwnedPayment(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, payment.ToResponse())
}

// @Summary Payment Receipt
// @Description Downloads the PDF receipt of a successful payment
// @Tags Payments
// @Produce application/pdf
// @Param payment_id path int true "Payment ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{payment_id}/receipt [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	payment, ok := h.loadOwnedPayment(c)
	if !ok {
		return
	}

	user, err := h.paymentService.FindUser(c.Request.Context(), payment.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := h.reportService.PaymentReceiptPDF(payment, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary User Payments
// @Description Lists a user's payments across all charges
// @Tags Users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /users/{user_id}/payments [get]
func (h *PaymentHandler) UserPayments(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	payments, err := h.paymentService.FindByUser(c.Request.Context(), uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"payments": responses})
}

// loadOwnedPayment fetches the payment and enforces that the caller owns it
// or manages buildings.
func (h *PaymentHandler) loadOwnedPayment(c *gin.Context) (*models.Payment, bool) {
	id, err := strconv.ParseUint(c.Param("payment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment ID"})
		return nil, false
	}

	payment, err := h.paymentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	if payment.UserID != middleware.GetUserID(c) && !middleware.IsManager(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this payment"})
		return nil, false
	}

	return payment, true
}
