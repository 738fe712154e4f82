package repositories

import (
	"context"
)

// ReportRepository serves the role-scoped dashboards, the department and
// subject roll-ups, the date-ranged reports, and the data snapshots that feed
// AI prompt templates.
type ReportRepository interface {
	// Role dashboards
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	TeacherOverview(ctx context.Context, teacherID uint) (*TeacherOverview, error)
	StudentOverview(ctx context.Context, studentID uint) (*StudentOverview, error)

	// Roll-ups. A department or subject with no matching result rows reports
	// zero averages and HasResults=false rather than failing.
	DepartmentSummaries(ctx context.Context) ([]*DepartmentSummary, error)
	SubjectPerformance(ctx context.Context, teacherID *uint) ([]*SubjectPerformance, error)

	// Date-ranged reports (teacher and admin reporting views)
	StudentPerformanceReport(ctx context.Context, period ReportPeriod) ([]*StudentPerformanceRow, error)
	AttendanceSummaryReport(ctx context.Context, period ReportPeriod) ([]*AttendanceSummaryRow, error)
	AssignmentAnalysisReport(ctx context.Context, period ReportPeriod) ([]*AssignmentAnalysisRow, error)
	SubjectComparisonReport(ctx context.Context, period ReportPeriod) ([]*SubjectComparisonRow, error)
	UserActivityReport(ctx context.Context) ([]*UserActivityRow, error)

	// AI prompt snapshots
	StudentPerformanceSnapshot(ctx context.Context, studentID uint) ([]*StudentPerformanceFact, error)
}
