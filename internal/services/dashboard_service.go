package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadboost/academic-service/internal/ai"
	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	gen    ai.TextGenerator
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, gen ai.TextGenerator, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		gen:    gen,
		logger: logger,
	}
}

func (s *dashboardService) Summary(ctx context.Context, actor models.Identity) (*DashboardSummary, error) {
	summary := &DashboardSummary{Role: actor.Role}

	switch actor.Role {
	case models.RoleAdmin:
		overview, err := s.repo.Report().AdminOverview(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load admin overview: %w", err)
		}
		summary.Admin = overview

	case models.RoleTeacher:
		overview, err := s.repo.Report().TeacherOverview(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load teacher overview: %w", err)
		}
		summary.Teacher = overview

	case models.RoleStudent:
		overview, err := s.repo.Report().StudentOverview(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load student overview: %w", err)
		}
		marks, err := s.repo.Result().MarksByStudent(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load result marks: %w", err)
		}
		summary.Student = &StudentSummary{
			StudentOverview: *overview,
			GPA:             GPAForMarks(marks),
		}

	default:
		return nil, NewPermissionError(actor.ID, 0, "dashboard", "view", "unknown role")
	}

	return summary, nil
}

func (s *dashboardService) DepartmentSummaries(ctx context.Context, actor models.Identity) ([]*repositories.DepartmentSummary, error) {
	if err := requireAdmin(actor, "report", "department_summaries"); err != nil {
		return nil, err
	}
	return s.repo.Report().DepartmentSummaries(ctx)
}

func (s *dashboardService) SubjectPerformance(ctx context.Context, actor models.Identity) ([]*repositories.SubjectPerformance, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.repo.Report().SubjectPerformance(ctx, nil)
	case models.RoleTeacher:
		teacherID := actor.ID
		return s.repo.Report().SubjectPerformance(ctx, &teacherID)
	default:
		return nil, NewPermissionError(actor.ID, 0, "report", "subject_performance", "admin or teacher role required")
	}
}

func requireStaff(actor models.Identity, resource, action string) error {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleTeacher {
		return NewPermissionError(actor.ID, 0, resource, action, "admin or teacher role required")
	}
	return nil
}

func (s *dashboardService) StudentPerformanceReport(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]*repositories.StudentPerformanceRow, error) {
	if err := requireStaff(actor, "report", "student_performance"); err != nil {
		return nil, err
	}
	return s.repo.Report().StudentPerformanceReport(ctx, period)
}

func (s *dashboardService) AttendanceSummaryReport(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]*repositories.AttendanceSummaryRow, error) {
	if err := requireStaff(actor, "report", "attendance_summary"); err != nil {
		return nil, err
	}
	return s.repo.Report().AttendanceSummaryReport(ctx, period)
}

func (s *dashboardService) AssignmentAnalysisReport(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]*repositories.AssignmentAnalysisRow, error) {
	if err := requireStaff(actor, "report", "assignment_analysis"); err != nil {
		return nil, err
	}
	return s.repo.Report().AssignmentAnalysisReport(ctx, period)
}

func (s *dashboardService) SubjectComparisonReport(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]*repositories.SubjectComparisonRow, error) {
	if err := requireStaff(actor, "report", "subject_comparison"); err != nil {
		return nil, err
	}
	return s.repo.Report().SubjectComparisonReport(ctx, period)
}

func (s *dashboardService) UserActivityReport(ctx context.Context, actor models.Identity) ([]*repositories.UserActivityRow, error) {
	if err := requireAdmin(actor, "report", "user_activity"); err != nil {
		return nil, err
	}
	return s.repo.Report().UserActivityReport(ctx)
}

func (s *dashboardService) PerformanceInsights(ctx context.Context, actor models.Identity, studentID uint) (string, error) {
	// Students may only ask about themselves.
	if actor.Role == models.RoleStudent && actor.ID != studentID {
		return "", NewPermissionError(actor.ID, studentID, "insights", "view", "students may only view their own insights")
	}

	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load student: %w", err)
	}

	facts, err := s.repo.Report().StudentPerformanceSnapshot(ctx, studentID)
	if err != nil {
		return "", fmt.Errorf("failed to load performance snapshot: %w", err)
	}
	if len(facts) == 0 {
		return "No performance data recorded yet. Insights will appear once results are published.", nil
	}

	text, err := s.gen.GenerateText(ctx, ai.PerformancePrompt(student.FullName, facts))
	if err != nil {
		s.logger.Warn("Insights generation failed, serving fallback", "error", err, "student_id", studentID)
		return ai.FallbackMessage, nil
	}
	return text, nil
}

func (s *dashboardService) StudentResults(ctx context.Context, actor models.Identity, studentID uint) ([]*models.Result, float64, error) {
	if actor.Role == models.RoleStudent && actor.ID != studentID {
		return nil, 0, NewPermissionError(actor.ID, studentID, "result", "view", "students may only view their own results")
	}

	results, err := s.repo.Result().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load results: %w", err)
	}

	marks := make([]float64, 0, len(results))
	for _, r := range results {
		marks = append(marks, r.TotalMarks)
	}
	return results, GPAForMarks(marks), nil
}
