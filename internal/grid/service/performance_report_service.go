package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/xuri/excelize/v2"
)

// PerformanceReportService aggregates a technician's monitoring readings
// into periodic reports and runs their submit/approve pipeline.
type PerformanceReportService struct {
	perfRepo       *repository.PerformanceReportRepository
	monitoringRepo *repository.MonitoringRepository
	userRepo       *repository.UserRepository
}

func NewPerformanceReportService(
	perfRepo *repository.PerformanceReportRepository,
	monitoringRepo *repository.MonitoringRepository,
	userRepo *repository.UserRepository,
) *PerformanceReportService {
	return &PerformanceReportService{
		perfRepo:       perfRepo,
		monitoringRepo: monitoringRepo,
		userRepo:       userRepo,
	}
}

// GeneratePerfReportRequest creates a draft report over a period.
type GeneratePerfReportRequest struct {
	PeriodStart     time.Time `json:"period_start" binding:"required"`
	PeriodEnd       time.Time `json:"period_end" binding:"required"`
	ReportType      string    `json:"report_type"`
	Analysis        string    `json:"analysis"`
	Recommendations string    `json:"recommendations"`
}

// PerfDecisionRequest settles a submitted report.
type PerfDecisionRequest struct {
	Decision string `json:"decision" binding:"required"` // approve/reject
}

// PerfReportListResult is one page of performance reports.
type PerfReportListResult struct {
	Items      []entity.PerformanceReport `json:"items"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"page_size"`
	TotalPages int                        `json:"total_pages"`
}

// Generate aggregates the technician's readings in the period into a draft
// report. Counts and averages are computed at generation time and stored;
// later readings do not change an existing report.
func (s *PerformanceReportService) Generate(ctx context.Context, technicianID string, req *GeneratePerfReportRequest) (*entity.PerformanceReport, error) {
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end must be after period start", ErrValidation)
	}
	reportType := req.ReportType
	if reportType == "" {
		reportType = entity.PerfReportTypeWeekly
	}
	if reportType != entity.PerfReportTypeWeekly && reportType != entity.PerfReportTypeMonthly {
		return nil, fmt.Errorf("%w: unknown report type %q", ErrValidation, reportType)
	}

	readings, err := s.monitoringRepo.ListByTechnicianPeriod(ctx, technicianID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}

	report := &entity.PerformanceReport{
		ID:              uuid.New().String()[:32],
		TechnicianID:    technicianID,
		PeriodStart:     req.PeriodStart,
		PeriodEnd:       req.PeriodEnd,
		ReportType:      reportType,
		Analysis:        req.Analysis,
		Recommendations: req.Recommendations,
		Status:          entity.PerfReportStatusDraft,
	}
	aggregate(report, readings)

	if err := s.perfRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create performance report: %w", err)
	}
	return report, nil
}

// aggregate fills the count and average columns from the readings. Averages
// ignore absent values; a period with no readings leaves everything zero.
func aggregate(report *entity.PerformanceReport, readings []entity.DailyMonitoring) {
	var sumV, sumC, sumPF float64
	var nV, nC, nPF int

	report.TotalReadings = len(readings)
	for _, rec := range readings {
		switch rec.OperationalStatus {
		case entity.MonitoringStatusNormal:
			report.NormalCount++
		case entity.MonitoringStatusWarning:
			report.WarningCount++
		case entity.MonitoringStatusCritical:
			report.CriticalCount++
		}
		if rec.Voltage != nil {
			sumV += *rec.Voltage
			nV++
		}
		if rec.Current != nil {
			sumC += *rec.Current
			nC++
		}
		if rec.PowerFactor != nil {
			sumPF += *rec.PowerFactor
			nPF++
		}
	}
	if nV > 0 {
		report.AvgVoltage = sumV / float64(nV)
	}
	if nC > 0 {
		report.AvgCurrent = sumC / float64(nC)
	}
	if nPF > 0 {
		report.AvgPowerFactor = sumPF / float64(nPF)
	}
}

// Submit moves a draft report to submitted. Only the owning technician may
// submit.
func (s *PerformanceReportService) Submit(ctx context.Context, id, userID string) (*entity.PerformanceReport, error) {
	report, err := s.perfRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find performance report: %w", err)
	}
	if report.TechnicianID != userID {
		return nil, fmt.Errorf("%w: only the owning technician may submit", ErrPermission)
	}

	applied, err := s.perfRepo.Submit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submit performance report: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: report is not a draft", ErrInvalidState)
	}
	return s.perfRepo.FindByID(ctx, id)
}

// Decide settles a submitted report. The decision requires dm rank or
// above.
func (s *PerformanceReportService) Decide(ctx context.Context, id, deciderID string, req *PerfDecisionRequest) (*entity.PerformanceReport, error) {
	decider, err := s.userRepo.FindByID(ctx, deciderID)
	if err != nil {
		return nil, fmt.Errorf("find decider: %w", err)
	}
	if !decider.HasPermission(entity.RoleDM) {
		return nil, fmt.Errorf("%w: deciding performance reports requires %s", ErrPermission, entity.RoleDM)
	}

	var status string
	switch req.Decision {
	case "approve":
		status = entity.PerfReportStatusApproved
	case "reject":
		status = entity.PerfReportStatusRejected
	default:
		return nil, fmt.Errorf("%w: decision must be approve or reject", ErrValidation)
	}

	applied, err := s.perfRepo.Decide(ctx, id, status, deciderID)
	if err != nil {
		return nil, fmt.Errorf("decide performance report: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: report is not submitted", ErrInvalidState)
	}
	return s.perfRepo.FindByID(ctx, id)
}

func (s *PerformanceReportService) Get(ctx context.Context, id string) (*entity.PerformanceReport, error) {
	report, err := s.perfRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find performance report: %w", err)
	}
	return report, nil
}

func (s *PerformanceReportService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*PerfReportListResult, error) {
	reports, total, err := s.perfRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list performance reports: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &PerfReportListResult{
		Items:      reports,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

var perfExportHeaders = []string{
	"Date", "Shift", "Equipment", "Voltage (V)", "Current (A)", "Power Factor", "Status", "Observations",
}

// Export renders the report and its underlying readings as a spreadsheet.
func (s *PerformanceReportService) Export(ctx context.Context, id string) (*excelize.File, string, error) {
	report, err := s.perfRepo.FindByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("find performance report: %w", err)
	}
	readings, err := s.monitoringRepo.ListByTechnicianPeriod(ctx, report.TechnicianID, report.PeriodStart, report.PeriodEnd)
	if err != nil {
		return nil, "", fmt.Errorf("list readings: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Performance"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range perfExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, rec := range readings {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.MonitoringDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.Shift)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.EquipmentID)
		if rec.Voltage != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), *rec.Voltage)
		}
		if rec.Current != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *rec.Current)
		}
		if rec.PowerFactor != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *rec.PowerFactor)
		}
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), rec.OperationalStatus)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), rec.Observations)
	}

	summaryRow := len(readings) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Summary")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow),
		fmt.Sprintf("readings: %d, normal: %d, warning: %d, critical: %d",
			report.TotalReadings, report.NormalCount, report.WarningCount, report.CriticalCount))
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), report.AvgVoltage)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow), report.AvgCurrent)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", summaryRow), report.AvgPowerFactor)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	colWidths := []float64{12, 10, 34, 12, 12, 12, 10, 30}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("Performance_%s_%s.xlsx", report.ReportType, periodLabel(report.PeriodStart, report.PeriodEnd))
	return f, filename, nil
}
