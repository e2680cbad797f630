package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/internal/repository"
	"github.com/hostelhq/hostel-api/pkg/logger"
)

// TenantArrears is one tenant's outstanding position across the charges of
// a building.
type TenantArrears struct {
	UserID       uint          `json:"user_id"`
	TenantName   string        `json:"tenant_name"`
	Email        string        `json:"email"`
	RoomLabel    string        `json:"room_label"`
	Lines        []ArrearsLine `json:"lines"`
	TotalArrears int64         `json:"total_arrears"`
}

// BuildingArrearsReport aggregates arrears for every active tenant in a
// building.
type BuildingArrearsReport struct {
	BuildingID   uint            `json:"building_id"`
	BuildingName string          `json:"building_name"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Tenants      []TenantArrears `json:"tenants"`
	TotalArrears int64           `json:"total_arrears"`
}

type ReportService struct {
	statusSvc       *ChargeStatusService
	buildingRepo    repository.BuildingRepository
	chargeRepo      repository.ChargeRepository
	tenancyRepo     repository.TenancyRepository
	emailSvc        *EmailService
	notificationSvc *NotificationService
}

func NewReportService(
	statusSvc *ChargeStatusService,
	buildingRepo repository.BuildingRepository,
	chargeRepo repository.ChargeRepository,
	tenancyRepo repository.TenancyRepository,
	emailSvc *EmailService,
	notificationSvc *NotificationService,
) *ReportService {
	return &ReportService{
		statusSvc:       statusSvc,
		buildingRepo:    buildingRepo,
		chargeRepo:      chargeRepo,
		tenancyRepo:     tenancyRepo,
		emailSvc:        emailSvc,
		notificationSvc: notificationSvc,
	}
}

// BuildingArrears reconciles every active tenant in the building against
// every charge and returns the outstanding totals. Tenants who are fully up
// to date appear with an empty line list.
func (s *ReportService) BuildingArrears(ctx context.Context, buildingID uint) (*BuildingArrearsReport, error) {
	building, err := s.buildingRepo.FindByID(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("load building %d: %w", buildingID, err)
	}

	charges, err := s.chargeRepo.FindByBuilding(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("load charges: %w", err)
	}

	tenancies, err := s.tenancyRepo.FindActiveByBuilding(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("load tenancies: %w", err)
	}

	report := &BuildingArrearsReport{
		BuildingID:   building.ID,
		BuildingName: building.Name,
		GeneratedAt:  time.Now(),
		Tenants:      []TenantArrears{},
	}

	for _, tenancy := range tenancies {
		lines, total, err := s.tenantArrearsLines(ctx, tenancy.UserID, charges)
		if err != nil {
			return nil, err
		}

		report.Tenants = append(report.Tenants, TenantArrears{
			UserID:       tenancy.UserID,
			TenantName:   tenancy.User.FullName,
			Email:        tenancy.User.Email,
			RoomLabel:    tenancy.Room.Label,
			Lines:        lines,
			TotalArrears: total,
		})
		report.TotalArrears += total
	}

	return report, nil
}

func (s *ReportService) tenantArrearsLines(ctx context.Context, userID uint, charges []models.Charge) ([]ArrearsLine, int64, error) {
	lines := []ArrearsLine{}
	var total int64

	for _, charge := range charges {
		status, err := s.statusSvc.GetChargePaymentStatus(ctx, userID, charge.ID, "")
		if err != nil {
			if errors.Is(err, ErrNoActiveTenancy) {
				continue
			}
			return nil, 0, fmt.Errorf("status for user %d charge %d: %w", userID, charge.ID, err)
		}
		if status.TotalArrears == 0 {
			continue
		}

		lines = append(lines, ArrearsLine{
			ChargeName: charge.Name,
			Periods:    len(status.UnpaidPeriods),
			Amount:     status.TotalArrears,
		})
		total += status.TotalArrears
	}

	return lines, total, nil
}

// BuildingArrearsXLSX renders the arrears report as a spreadsheet.
func (s *ReportService) BuildingArrearsXLSX(ctx context.Context, buildingID uint) ([]byte, string, error) {
	report, err := s.BuildingArrears(ctx, buildingID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Arrears"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Arrears Report - %s", report.BuildingName))
	_ = f.SetCellValue(sheet, "A2", report.GeneratedAt.Format("2006-01-02 15:04"))

	_ = f.SetCellValue(sheet, "A4", "Tenant")
	_ = f.SetCellValue(sheet, "B4", "Room")
	_ = f.SetCellValue(sheet, "C4", "Charge")
	_ = f.SetCellValue(sheet, "D4", "Unpaid Periods")
	_ = f.SetCellValue(sheet, "E4", "Amount (NGN)")
	_ = f.SetCellStyle(sheet, "A4", "E4", headerStyle)

	row := 5
	for _, tenant := range report.Tenants {
		if len(tenant.Lines) == 0 {
			continue
		}
		for _, line := range tenant.Lines {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tenant.TenantName)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), tenant.RoomLabel)
			_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.ChargeName)
			_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), line.Periods)
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), line.Amount)
			row++
		}
	}

	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), report.TotalArrears)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row), headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("arrears_%s_%s.xlsx", report.BuildingName, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// PaymentReceiptPDF renders a receipt for a successful payment.
func (s *ReportService) PaymentReceiptPDF(payment *models.Payment, user *models.User) ([]byte, string, error) {
	if payment.Status != models.PaymentStatusSuccess {
		return nil, "", fmt.Errorf("%w: receipt requires a successful payment", ErrInvalidState)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(50, 8, "Tenant:")
	pdf.Cell(80, 8, user.FullName)
	pdf.Ln(6)

	pdf.Cell(50, 8, "Charge:")
	pdf.Cell(80, 8, payment.Charge.Name)
	pdf.Ln(6)

	pdf.Cell(50, 8, "Period:")
	pdf.Cell(80, 8, payment.PeriodLabel)
	pdf.Ln(6)

	pdf.Cell(50, 8, "Amount:")
	pdf.Cell(80, 8, fmt.Sprintf("NGN %d", payment.Amount))
	pdf.Ln(6)

	pdf.Cell(50, 8, "Reference:")
	pdf.Cell(80, 8, payment.Reference)
	pdf.Ln(6)

	if payment.PaidAt != nil {
		pdf.Cell(50, 8, "Paid at:")
		pdf.Cell(80, 8, payment.PaidAt.Format("2006-01-02 15:04"))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("receipt_%s.pdf", payment.Reference)
	return buf.Bytes(), filename, nil
}

// SendArrearsReminders emails every active tenant who has outstanding
// periods on any charge of their building. Intended to run as a daily job.
func (s *ReportService) SendArrearsReminders(ctx context.Context) error {
	tenancies, err := s.tenancyRepo.FindAllActive(ctx)
	if err != nil {
		return fmt.Errorf("load active tenancies: %w", err)
	}

	for _, tenancy := range tenancies {
		charges, err := s.chargeRepo.FindByBuilding(ctx, tenancy.Room.BuildingID)
		if err != nil {
			logger.Error("Failed to load charges for arrears reminders", "building_id", tenancy.Room.BuildingID, "error", err)
			continue
		}

		lines, total, err := s.tenantArrearsLines(ctx, tenancy.UserID, charges)
		if err != nil {
			logger.Error("Failed to compute arrears for reminder", "user_id", tenancy.UserID, "error", err)
			continue
		}
		if total == 0 {
			continue
		}

		user := tenancy.User
		if err := s.emailSvc.SendArrearsReminder(ctx, &user, lines, total); err != nil {
			logger.Error("Failed to send arrears reminder", "user_id", user.ID, "error", err)
			continue
		}

		if s.notificationSvc != nil {
			message := fmt.Sprintf("You have outstanding payments totalling ₦%d across %d charge(s).", total, len(lines))
			if err := s.notificationSvc.NotifyUser(ctx, user.ID, "Outstanding payments", message, models.NotificationTypeArrears); err != nil {
				logger.Error("Failed to create arrears notification", "user_id", user.ID, "error", err)
			}
		}
	}

	return nil
}
