package services

import (
	"time"

	"github.com/hostelhq/hostel-api/internal/config"
	"github.com/hostelhq/hostel-api/internal/gateway"
	"github.com/hostelhq/hostel-api/internal/jobs"
	"github.com/hostelhq/hostel-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	ChargeStatus *ChargeStatusService
	Payment      *PaymentService
	Notification *NotificationService
	Email        *EmailService
	Report       *ReportService
	Property     *PropertyService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, gw gateway.Client, cfg *config.Config) *Services {
	notificationSvc := NewNotificationService(repos.Notification)
	emailSvc := NewEmailService(cfg)

	statusSvc := NewChargeStatusService(repos.Payment, repos.Preference, repos.Charge, repos.Tenancy)

	paymentSvc := NewPaymentService(
		repos.Payment,
		repos.Charge,
		repos.Tenancy,
		repos.Preference,
		repos.User,
		statusSvc,
		gw,
		notificationSvc,
		emailSvc,
		worker,
		cfg.PaymentCurrency,
		time.Duration(cfg.PendingPaymentTTLHours)*time.Hour,
	)

	reportSvc := NewReportService(statusSvc, repos.Building, repos.Charge, repos.Tenancy, emailSvc, notificationSvc)
	propertySvc := NewPropertyService(repos.Building, repos.Charge, repos.Tenancy, repos.User, notificationSvc)

	return &Services{
		Auth:         NewAuthService(repos.User, cfg),
		ChargeStatus: statusSvc,
		Payment:      paymentSvc,
		Notification: notificationSvc,
		Email:        emailSvc,
		Report:       reportSvc,
		Property:     propertySvc,
	}
}
