package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *exportService) StudentPerformanceCSV(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]byte, string, error) {
	if err := requireStaff(actor, "export", "student_performance"); err != nil {
		return nil, "", err
	}

	rows, err := s.repo.Report().StudentPerformanceReport(ctx, period)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load report: %w", err)
	}

	records := [][]string{{"Student ID", "Student", "Subject", "Total Marks", "Attendance %", "Grade", "Submissions"}}
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatUint(uint64(r.StudentID), 10),
			r.StudentName,
			r.SubjectName,
			formatFloat(r.TotalMarks),
			formatFloat(r.AttendancePct),
			r.Grade,
			strconv.FormatInt(r.SubmissionCount, 10),
		})
	}

	data, err := writeCSV(records)
	if err != nil {
		return nil, "", err
	}
	return data, exportFileName("student_performance", "csv"), nil
}

func (s *exportService) AttendanceSummaryCSV(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]byte, string, error) {
	if err := requireStaff(actor, "export", "attendance_summary"); err != nil {
		return nil, "", err
	}

	rows, err := s.repo.Report().AttendanceSummaryReport(ctx, period)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load report: %w", err)
	}

	records := [][]string{{"Subject", "Student", "Present", "Absent", "Late", "Total Marked", "Present Rate %"}}
	for _, r := range rows {
		records = append(records, []string{
			r.SubjectName,
			r.StudentName,
			strconv.FormatInt(r.PresentCount, 10),
			strconv.FormatInt(r.AbsentCount, 10),
			strconv.FormatInt(r.LateCount, 10),
			strconv.FormatInt(r.TotalMarked, 10),
			formatFloat(r.PresentRate),
		})
	}

	data, err := writeCSV(records)
	if err != nil {
		return nil, "", err
	}
	return data, exportFileName("attendance_summary", "csv"), nil
}

func (s *exportService) AssignmentAnalysisCSV(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]byte, string, error) {
	if err := requireStaff(actor, "export", "assignment_analysis"); err != nil {
		return nil, "", err
	}

	rows, err := s.repo.Report().AssignmentAnalysisReport(ctx, period)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load report: %w", err)
	}

	records := [][]string{{"Assignment", "Subject", "Due Date", "Submissions", "Graded", "Avg Marks", "Max Marks"}}
	for _, r := range rows {
		records = append(records, []string{
			r.Title,
			r.SubjectName,
			r.DueDate,
			strconv.FormatInt(r.SubmissionCount, 10),
			strconv.FormatInt(r.GradedCount, 10),
			formatFloat(r.AvgMarks),
			strconv.Itoa(r.MaxMarks),
		})
	}

	data, err := writeCSV(records)
	if err != nil {
		return nil, "", err
	}
	return data, exportFileName("assignment_analysis", "csv"), nil
}

func (s *exportService) UserActivityCSV(ctx context.Context, actor models.Identity) ([]byte, string, error) {
	if err := requireAdmin(actor, "export", "user_activity"); err != nil {
		return nil, "", err
	}

	rows, err := s.repo.Report().UserActivityReport(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load report: %w", err)
	}

	records := [][]string{{"User ID", "Username", "Full Name", "Role", "Department", "Active", "Joined", "Submissions"}}
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatUint(uint64(r.UserID), 10),
			r.Username,
			r.FullName,
			r.Role,
			r.Department,
			strconv.FormatBool(r.IsActive),
			r.CreatedAt,
			strconv.FormatInt(r.Submissions, 10),
		})
	}

	data, err := writeCSV(records)
	if err != nil {
		return nil, "", err
	}
	return data, exportFileName("user_activity", "csv"), nil
}

func (s *exportService) ReportWorkbook(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]byte, string, error) {
	if err := requireStaff(actor, "export", "workbook"); err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	performance, err := s.repo.Report().StudentPerformanceReport(ctx, period)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load performance report: %w", err)
	}
	sheet := "Student Performance"
	f.SetSheetName("Sheet1", sheet)
	writeSheetRow(f, sheet, 1, "Student", "Subject", "Total Marks", "Attendance %", "Grade", "Submissions")
	for i, r := range performance {
		writeSheetRow(f, sheet, i+2, r.StudentName, r.SubjectName, r.TotalMarks, r.AttendancePct, r.Grade, r.SubmissionCount)
	}

	attendance, err := s.repo.Report().AttendanceSummaryReport(ctx, period)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load attendance report: %w", err)
	}
	sheet = "Attendance"
	f.NewSheet(sheet)
	writeSheetRow(f, sheet, 1, "Subject", "Student", "Present", "Absent", "Late", "Total", "Present Rate %")
	for i, r := range attendance {
		writeSheetRow(f, sheet, i+2, r.SubjectName, r.StudentName, r.PresentCount, r.AbsentCount, r.LateCount, r.TotalMarked, r.PresentRate)
	}

	assignments, err := s.repo.Report().AssignmentAnalysisReport(ctx, period)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load assignment report: %w", err)
	}
	sheet = "Assignments"
	f.NewSheet(sheet)
	writeSheetRow(f, sheet, 1, "Assignment", "Subject", "Due Date", "Submissions", "Graded", "Avg Marks", "Max Marks")
	for i, r := range assignments {
		writeSheetRow(f, sheet, i+2, r.Title, r.SubjectName, r.DueDate, r.SubmissionCount, r.GradedCount, r.AvgMarks, r.MaxMarks)
	}

	comparison, err := s.repo.Report().SubjectComparisonReport(ctx, period)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load comparison report: %w", err)
	}
	sheet = "Subject Comparison"
	f.NewSheet(sheet)
	writeSheetRow(f, sheet, 1, "Subject", "Avg Marks", "Avg Attendance %", "Students", "Pass Rate %")
	for i, r := range comparison {
		writeSheetRow(f, sheet, i+2, r.SubjectName, r.AvgMarks, r.AvgAttendance, r.StudentCount, r.PassRate)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Report workbook exported", "user_id", actor.ID)
	return buf.Bytes(), exportFileName("academic_report", "xlsx"), nil
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetSheetRow(sheet, cell, &values)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func exportFileName(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, time.Now().Format("20060102"), ext)
}
