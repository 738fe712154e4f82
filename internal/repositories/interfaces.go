package repositories

import (
	"time"

	"github.com/acadboost/academic-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role       *models.UserRole `json:"role"`
	Department *string          `json:"department"`
	ActiveOnly bool             `json:"active_only"`
	Query      string           `json:"query"` // matches username or full name
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

type SubjectFilters struct {
	DepartmentID *uint `json:"department_id"`
	TeacherID    *uint `json:"teacher_id"`
	Semester     *int  `json:"semester"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
}

type AttendanceFilters struct {
	SubjectID *uint      `json:"subject_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

type AnnouncementFilters struct {
	ActiveOnly bool `json:"active_only"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
}

// ReportPeriod bounds the date-ranged teacher reports.
type ReportPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ===== DASHBOARD OVERVIEW STRUCTS =====

type AdminOverview struct {
	TotalStudents     int64 `json:"total_students"`
	TotalTeachers     int64 `json:"total_teachers"`
	TotalDepartments  int64 `json:"total_departments"`
	TotalSubjects     int64 `json:"total_subjects"`
	ActiveAssignments int64 `json:"active_assignments"`
	ActiveProjects    int64 `json:"active_projects"`
}

type TeacherOverview struct {
	MySubjects     int64 `json:"my_subjects"`
	MyStudents     int64 `json:"my_students"`
	MyAssignments  int64 `json:"my_assignments"`
	MyProjects     int64 `json:"my_projects"`
	PendingGrading int64 `json:"pending_grading"`
}

type StudentOverview struct {
	EnrolledSubjects    int64   `json:"enrolled_subjects"`
	SubmittedAssignment int64   `json:"submitted_assignments"`
	SubmittedProjects   int64   `json:"submitted_projects"`
	CertificatesEarned  int64   `json:"certificates_earned"`
	AvgAttendance       float64 `json:"avg_attendance"`
	AvgMarks            float64 `json:"avg_marks"`
}

// ===== ROLL-UP AND REPORT ROWS =====

type DepartmentSummary struct {
	DepartmentID uint    `json:"department_id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	StudentCount int64   `json:"student_count"`
	TeacherCount int64   `json:"teacher_count"`
	SubjectCount int64   `json:"subject_count"`
	AvgMarks     float64 `json:"avg_marks"`
	HasResults   bool    `json:"has_results"`
}

type SubjectPerformance struct {
	SubjectID     uint    `json:"subject_id"`
	SubjectName   string  `json:"subject_name"`
	SubjectCode   string  `json:"subject_code"`
	EnrolledCount int64   `json:"enrolled_count"`
	AvgMarks      float64 `json:"avg_marks"`
	AvgAttendance float64 `json:"avg_attendance"`
	ResultCount   int64   `json:"result_count"`
}

type StudentPerformanceRow struct {
	StudentID       uint    `json:"student_id"`
	StudentName     string  `json:"student_name"`
	SubjectName     string  `json:"subject_name"`
	TotalMarks      float64 `json:"total_marks"`
	AttendancePct   float64 `json:"attendance_pct"`
	Grade           string  `json:"grade"`
	SubmissionCount int64   `json:"submission_count"`
}

type AttendanceSummaryRow struct {
	SubjectName  string  `json:"subject_name"`
	StudentName  string  `json:"student_name"`
	PresentCount int64   `json:"present_count"`
	AbsentCount  int64   `json:"absent_count"`
	LateCount    int64   `json:"late_count"`
	TotalMarked  int64   `json:"total_marked"`
	PresentRate  float64 `json:"present_rate"`
}

type AssignmentAnalysisRow struct {
	AssignmentID    uint    `json:"assignment_id"`
	Title           string  `json:"title"`
	SubjectName     string  `json:"subject_name"`
	DueDate         string  `json:"due_date"`
	SubmissionCount int64   `json:"submission_count"`
	GradedCount     int64   `json:"graded_count"`
	AvgMarks        float64 `json:"avg_marks"`
	MaxMarks        int     `json:"max_marks"`
}

type SubjectComparisonRow struct {
	SubjectName   string  `json:"subject_name"`
	AvgMarks      float64 `json:"avg_marks"`
	AvgAttendance float64 `json:"avg_attendance"`
	StudentCount  int64   `json:"student_count"`
	PassRate      float64 `json:"pass_rate"`
}

type UserActivityRow struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	Submissions int64  `json:"submissions"`
}

// StudentPerformanceFact is a row of the snapshot serialized into AI prompts.
type StudentPerformanceFact struct {
	StudentName          string   `json:"student_name"`
	SubjectName          string   `json:"subject_name"`
	TotalMarks           float64  `json:"total_marks"`
	AttendancePercentage float64  `json:"attendance_percentage"`
	Grade                string   `json:"grade"`
	AssignmentsSubmitted int64    `json:"assignments_submitted"`
	AvgAssignmentMarks   *float64 `json:"avg_assignment_marks"`
}

// ===== ATTENDANCE AGGREGATES =====

type AttendanceStats struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
	Total   int64 `json:"total"`
}

// SubjectAttendanceRow is one student's aggregate within a subject overview.
type SubjectAttendanceRow struct {
	StudentID   uint   `json:"student_id"`
	StudentName string `json:"student_name"`
	AttendanceStats
}

// PresentRate counts late as attended, matching the reference percentage rule.
func (s AttendanceStats) PresentRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Present+s.Late) / float64(s.Total) * 100
}
