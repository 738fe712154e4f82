package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/acadboost/academic-service/internal/cache"
	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type reportPostgres struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewReportPostgres(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ReportRepository {
	return &reportPostgres{db: db, cacheManager: cacheManager}
}

// ===== ROLE DASHBOARDS =====

func (r *reportPostgres) AdminOverview(ctx context.Context) (*repositories.AdminOverview, error) {
	var overview repositories.AdminOverview
	if err := r.cacheManager.Stats().Get(ctx, "admin_overview", &overview); err == nil {
		return &overview, nil
	}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&overview.TotalStudents, r.db.Model(&models.User{}).Where("role = ? AND is_active = ?", models.RoleStudent, true)},
		{&overview.TotalTeachers, r.db.Model(&models.User{}).Where("role = ? AND is_active = ?", models.RoleTeacher, true)},
		{&overview.TotalDepartments, r.db.Model(&models.Department{})},
		{&overview.TotalSubjects, r.db.Model(&models.Subject{})},
		{&overview.ActiveAssignments, r.db.Model(&models.Assignment{}).Where("is_active = ?", true)},
		{&overview.ActiveProjects, r.db.Model(&models.Project{}).Where("status = ?", models.ProjectActive)},
	}
	for _, c := range counts {
		if err := c.query.WithContext(ctx).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("admin overview: %w", err)
		}
	}

	_ = r.cacheManager.Stats().Set(ctx, "admin_overview", &overview, cache.StatsCacheConfig.TTL)
	return &overview, nil
}

func (r *reportPostgres) TeacherOverview(ctx context.Context, teacherID uint) (*repositories.TeacherOverview, error) {
	var overview repositories.TeacherOverview

	if err := r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("teacher_id = ?", teacherID).
		Count(&overview.MySubjects).Error; err != nil {
		return nil, fmt.Errorf("teacher overview: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Joins("JOIN subjects ON subjects.id = enrollments.subject_id").
		Where("subjects.teacher_id = ?", teacherID).
		Distinct("enrollments.student_id").
		Count(&overview.MyStudents).Error; err != nil {
		return nil, fmt.Errorf("teacher overview: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("teacher_id = ? AND is_active = ?", teacherID, true).
		Count(&overview.MyAssignments).Error; err != nil {
		return nil, fmt.Errorf("teacher overview: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.ProjectActive).
		Count(&overview.MyProjects).Error; err != nil {
		return nil, fmt.Errorf("teacher overview: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.AssignmentSubmission{}).
		Joins("JOIN assignments ON assignments.id = assignment_submissions.assignment_id").
		Where("assignments.teacher_id = ? AND assignment_submissions.marks_obtained IS NULL", teacherID).
		Count(&overview.PendingGrading).Error; err != nil {
		return nil, fmt.Errorf("teacher overview: %w", err)
	}

	return &overview, nil
}

func (r *reportPostgres) StudentOverview(ctx context.Context, studentID uint) (*repositories.StudentOverview, error) {
	var overview repositories.StudentOverview

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&overview.EnrolledSubjects, r.db.Model(&models.Enrollment{}).Where("student_id = ?", studentID)},
		{&overview.SubmittedAssignment, r.db.Model(&models.AssignmentSubmission{}).Where("student_id = ?", studentID)},
		{&overview.SubmittedProjects, r.db.Model(&models.ProjectSubmission{}).Where("student_id = ?", studentID)},
		{&overview.CertificatesEarned, r.db.Model(&models.Certificate{}).Where("student_id = ?", studentID)},
	}
	for _, c := range counts {
		if err := c.query.WithContext(ctx).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("student overview: %w", err)
		}
	}

	// COALESCE keeps students with no result rows at 0, never NULL.
	var row struct {
		AvgAttendance float64
		AvgMarks      float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Result{}).
		Select("COALESCE(AVG(attendance_percentage), 0) as avg_attendance, COALESCE(AVG(total_marks), 0) as avg_marks").
		Where("student_id = ?", studentID).
		Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("student overview: %w", err)
	}
	overview.AvgAttendance = row.AvgAttendance
	overview.AvgMarks = row.AvgMarks

	return &overview, nil
}

// ===== ROLL-UPS =====

// DepartmentSummaries joins departments to users by the department name label
// and on to results. Departments with no students or results report zeros.
func (r *reportPostgres) DepartmentSummaries(ctx context.Context) ([]*repositories.DepartmentSummary, error) {
	var cached []*repositories.DepartmentSummary
	if err := r.cacheManager.Report().Get(ctx, "department_summaries", &cached); err == nil {
		return cached, nil
	}

	var rows []*repositories.DepartmentSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.id AS department_id,
			d.name,
			d.code,
			COUNT(DISTINCT CASE WHEN u.role = 'student' THEN u.id END) AS student_count,
			COUNT(DISTINCT CASE WHEN u.role = 'teacher' THEN u.id END) AS teacher_count,
			COUNT(DISTINCT s.id) AS subject_count,
			COALESCE(AVG(r.total_marks), 0) AS avg_marks,
			COUNT(r.id) > 0 AS has_results
		FROM departments d
		LEFT JOIN users u ON u.department = d.name AND u.is_active = true
		LEFT JOIN subjects s ON s.department_id = d.id
		LEFT JOIN results r ON r.student_id = u.id AND u.role = 'student'
		GROUP BY d.id, d.name, d.code
		ORDER BY d.name`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("department summaries: %w", err)
	}

	_ = r.cacheManager.Report().Set(ctx, "department_summaries", rows, cache.ReportCacheConfig.TTL)
	return rows, nil
}

func (r *reportPostgres) SubjectPerformance(ctx context.Context, teacherID *uint) ([]*repositories.SubjectPerformance, error) {
	query := `
		SELECT
			s.id AS subject_id,
			s.name AS subject_name,
			s.code AS subject_code,
			COUNT(DISTINCT e.student_id) AS enrolled_count,
			COALESCE(AVG(r.total_marks), 0) AS avg_marks,
			COALESCE(AVG(r.attendance_percentage), 0) AS avg_attendance,
			COUNT(r.id) AS result_count
		FROM subjects s
		LEFT JOIN enrollments e ON e.subject_id = s.id
		LEFT JOIN results r ON r.subject_id = s.id`
	args := []interface{}{}
	if teacherID != nil {
		query += ` WHERE s.teacher_id = ?`
		args = append(args, *teacherID)
	}
	query += ` GROUP BY s.id, s.name, s.code ORDER BY s.code`

	var rows []*repositories.SubjectPerformance
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("subject performance: %w", err)
	}
	return rows, nil
}

// ===== DATE-RANGED REPORTS =====

func (r *reportPostgres) StudentPerformanceReport(ctx context.Context, period repositories.ReportPeriod) ([]*repositories.StudentPerformanceRow, error) {
	var rows []*repositories.StudentPerformanceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id AS student_id,
			u.full_name AS student_name,
			s.name AS subject_name,
			res.total_marks,
			res.attendance_percentage AS attendance_pct,
			res.grade,
			COUNT(DISTINCT asub.id) AS submission_count
		FROM results res
		JOIN users u ON u.id = res.student_id
		JOIN subjects s ON s.id = res.subject_id
		LEFT JOIN assignment_submissions asub
			ON asub.student_id = res.student_id
			AND asub.submitted_at BETWEEN ? AND ?
		WHERE res.created_at BETWEEN ? AND ?
		GROUP BY u.id, u.full_name, s.name, res.total_marks, res.attendance_percentage, res.grade
		ORDER BY u.full_name, s.name`,
		period.From, period.To, period.From, period.To).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("student performance report: %w", err)
	}
	return rows, nil
}

func (r *reportPostgres) AttendanceSummaryReport(ctx context.Context, period repositories.ReportPeriod) ([]*repositories.AttendanceSummaryRow, error) {
	var rows []*repositories.AttendanceSummaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.name AS subject_name,
			u.full_name AS student_name,
			COUNT(*) FILTER (WHERE a.status = 'present') AS present_count,
			COUNT(*) FILTER (WHERE a.status = 'absent') AS absent_count,
			COUNT(*) FILTER (WHERE a.status = 'late') AS late_count,
			COUNT(*) AS total_marked,
			ROUND(100.0 * COUNT(*) FILTER (WHERE a.status IN ('present', 'late')) / COUNT(*), 1) AS present_rate
		FROM attendance a
		JOIN users u ON u.id = a.student_id
		JOIN subjects s ON s.id = a.subject_id
		WHERE a.date BETWEEN ? AND ?
		GROUP BY s.name, u.full_name
		ORDER BY s.name, u.full_name`,
		period.From.Format("2006-01-02"), period.To.Format("2006-01-02")).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("attendance summary report: %w", err)
	}
	return rows, nil
}

func (r *reportPostgres) AssignmentAnalysisReport(ctx context.Context, period repositories.ReportPeriod) ([]*repositories.AssignmentAnalysisRow, error) {
	var rows []*repositories.AssignmentAnalysisRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			a.id AS assignment_id,
			a.title,
			s.name AS subject_name,
			TO_CHAR(a.due_date, 'YYYY-MM-DD') AS due_date,
			COUNT(asub.id) AS submission_count,
			COUNT(asub.marks_obtained) AS graded_count,
			COALESCE(AVG(asub.marks_obtained), 0) AS avg_marks,
			a.max_marks
		FROM assignments a
		JOIN subjects s ON s.id = a.subject_id
		LEFT JOIN assignment_submissions asub ON asub.assignment_id = a.id
		WHERE a.created_at BETWEEN ? AND ?
		GROUP BY a.id, a.title, s.name, a.due_date, a.max_marks
		ORDER BY a.due_date DESC`,
		period.From, period.To).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("assignment analysis report: %w", err)
	}
	return rows, nil
}

func (r *reportPostgres) SubjectComparisonReport(ctx context.Context, period repositories.ReportPeriod) ([]*repositories.SubjectComparisonRow, error) {
	var rows []*repositories.SubjectComparisonRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.name AS subject_name,
			COALESCE(AVG(res.total_marks), 0) AS avg_marks,
			COALESCE(AVG(res.attendance_percentage), 0) AS avg_attendance,
			COUNT(DISTINCT res.student_id) AS student_count,
			CASE WHEN COUNT(res.id) = 0 THEN 0
				ELSE ROUND(100.0 * COUNT(*) FILTER (WHERE res.total_marks >= 40) / COUNT(res.id), 1)
			END AS pass_rate
		FROM subjects s
		LEFT JOIN results res ON res.subject_id = s.id AND res.created_at BETWEEN ? AND ?
		GROUP BY s.id, s.name
		ORDER BY avg_marks DESC`,
		period.From, period.To).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("subject comparison report: %w", err)
	}
	return rows, nil
}

func (r *reportPostgres) UserActivityReport(ctx context.Context) ([]*repositories.UserActivityRow, error) {
	var rows []*repositories.UserActivityRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id AS user_id,
			u.username,
			u.full_name,
			u.role,
			u.department,
			u.is_active,
			TO_CHAR(u.created_at, 'YYYY-MM-DD') AS created_at,
			COUNT(asub.id) AS submissions
		FROM users u
		LEFT JOIN assignment_submissions asub ON asub.student_id = u.id
		GROUP BY u.id, u.username, u.full_name, u.role, u.department, u.is_active, u.created_at
		ORDER BY u.created_at DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("user activity report: %w", err)
	}
	return rows, nil
}

// ===== AI SNAPSHOTS =====

func (r *reportPostgres) StudentPerformanceSnapshot(ctx context.Context, studentID uint) ([]*repositories.StudentPerformanceFact, error) {
	var rows []*repositories.StudentPerformanceFact
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.full_name AS student_name,
			s.name AS subject_name,
			res.total_marks,
			res.attendance_percentage,
			res.grade,
			COUNT(asub.id) AS assignments_submitted,
			AVG(asub.marks_obtained) AS avg_assignment_marks
		FROM users u
		LEFT JOIN results res ON res.student_id = u.id
		LEFT JOIN subjects s ON s.id = res.subject_id
		LEFT JOIN assignment_submissions asub ON asub.student_id = u.id
		WHERE u.id = ? AND u.role = 'student'
		GROUP BY u.id, u.full_name, s.id, s.name, res.total_marks, res.attendance_percentage, res.grade`,
		studentID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("student performance snapshot: %w", err)
	}
	return rows, nil
}
