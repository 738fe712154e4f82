package services

import (
	"context"
	"time"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type LoginRequest = validator.LoginRequest
type CreateUserRequest = validator.UserCreateRequest
type UpdateUserRequest = validator.UserUpdateRequest
type CreateDepartmentRequest = validator.DepartmentCreateRequest
type CreateSubjectRequest = validator.SubjectCreateRequest
type UpdateSubjectRequest = validator.SubjectUpdateRequest
type EnrollRequest = validator.EnrollmentRequest
type MarkAttendanceRequest = validator.AttendanceMarkRequest
type CreateAssignmentRequest = validator.AssignmentCreateRequest
type UpdateAssignmentRequest = validator.AssignmentUpdateRequest
type SubmitAssignmentRequest = validator.AssignmentSubmitRequest
type GradeRequest = validator.GradeRequest
type CreateProjectRequest = validator.ProjectCreateRequest
type UpdateProjectRequest = validator.ProjectUpdateRequest
type SubmitProjectRequest = validator.ProjectSubmitRequest
type CreateAnnouncementRequest = validator.AnnouncementCreateRequest
type IssueCertificateRequest = validator.CertificateIssueRequest
type UpsertResultRequest = validator.ResultUpsertRequest
type BuildResumeRequest = validator.ResumeBuildRequest
type UpdateProfileRequest = validator.ProfileUpdateRequest
type SendMessageRequest = validator.MessageSendRequest

type LoginResult struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// DashboardSummary is the role-scoped landing view; exactly one of the three
// overview fields is set, matching the caller's role.
type DashboardSummary struct {
	Role    models.UserRole               `json:"role"`
	Admin   *repositories.AdminOverview   `json:"admin,omitempty"`
	Teacher *repositories.TeacherOverview `json:"teacher,omitempty"`
	Student *StudentSummary               `json:"student,omitempty"`
}

// StudentSummary extends the raw overview counts with the derived GPA.
type StudentSummary struct {
	repositories.StudentOverview
	GPA float64 `json:"gpa"`
}

// StudentAssignmentView pairs an assignment with the caller's submission
// state and a deadline classification.
type StudentAssignmentView struct {
	Assignment    *models.Assignment           `json:"assignment"`
	Submission    *models.AssignmentSubmission `json:"submission,omitempty"`
	DeadlineState DeadlineState                `json:"deadline_state"`
}

type StudentProjectView struct {
	Project       *models.Project           `json:"project"`
	Submission    *models.ProjectSubmission `json:"submission,omitempty"`
	DeadlineState DeadlineState             `json:"deadline_state"`
}

// PublishResult reports an announcement and how many users it reached.
type PublishResult struct {
	Announcement  *models.Announcement `json:"announcement"`
	NotifiedUsers int64                `json:"notified_users"`
}

// VerificationStatus is the public certificate lookup outcome.
type VerificationStatus string

const (
	VerificationValid      VerificationStatus = "valid"
	VerificationUnverified VerificationStatus = "unverified"
	VerificationNotFound   VerificationStatus = "not_found"
)

type CertificateVerification struct {
	Status      VerificationStatus  `json:"status"`
	Certificate *models.Certificate `json:"certificate,omitempty"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Login validates credentials and the selected role; a role mismatch
	// fails exactly like a wrong password.
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (models.Identity, error)
	ChangePassword(ctx context.Context, actor models.Identity, oldPassword, newPassword string) error

	// UpdateProfile edits the caller's own row; a password change inside it
	// requires the current password.
	UpdateProfile(ctx context.Context, actor models.Identity, req *UpdateProfileRequest) (*models.User, error)
}

type AdminService interface {
	CreateUser(ctx context.Context, actor models.Identity, req *CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, actor models.Identity, userID uint, req *UpdateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context, actor models.Identity, filters repositories.UserFilters) ([]*models.User, int64, error)

	CreateDepartment(ctx context.Context, actor models.Identity, req *CreateDepartmentRequest) (*models.Department, error)
	ListDepartments(ctx context.Context, actor models.Identity) ([]*models.Department, error)

	CreateSubject(ctx context.Context, actor models.Identity, req *CreateSubjectRequest) (*models.Subject, error)
	UpdateSubject(ctx context.Context, actor models.Identity, subjectID uint, req *UpdateSubjectRequest) (*models.Subject, error)
	ListSubjects(ctx context.Context, actor models.Identity, filters repositories.SubjectFilters) ([]*models.Subject, error)

	EnrollStudent(ctx context.Context, actor models.Identity, req *EnrollRequest) (*models.Enrollment, error)

	// UpsertResult records or replaces the authoritative semester result row,
	// deriving total marks and letter grade.
	UpsertResult(ctx context.Context, actor models.Identity, req *UpsertResultRequest) (*models.Result, error)
}

type DashboardService interface {
	Summary(ctx context.Context, actor models.Identity) (*DashboardSummary, error)

	DepartmentSummaries(ctx context.Context, actor models.Identity) ([]*repositories.DepartmentSummary, error)
	SubjectPerformance(ctx context.Context, actor models.Identity) ([]*repositories.SubjectPerformance, error)

	StudentPerformanceReport(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]*repositories.StudentPerformanceRow, error)
	AttendanceSummaryReport(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]*repositories.AttendanceSummaryRow, error)
	AssignmentAnalysisReport(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]*repositories.AssignmentAnalysisRow, error)
	SubjectComparisonReport(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]*repositories.SubjectComparisonRow, error)
	UserActivityReport(ctx context.Context, actor models.Identity) ([]*repositories.UserActivityRow, error)

	// PerformanceInsights returns advisory free text about a student; on any
	// adapter failure it returns the fixed fallback message, never an error.
	PerformanceInsights(ctx context.Context, actor models.Identity, studentID uint) (string, error)

	StudentResults(ctx context.Context, actor models.Identity, studentID uint) ([]*models.Result, float64, error)
}

type AssignmentService interface {
	Create(ctx context.Context, actor models.Identity, req *CreateAssignmentRequest) (*models.Assignment, error)
	Update(ctx context.Context, actor models.Identity, assignmentID uint, req *UpdateAssignmentRequest) (*models.Assignment, error)
	ListByTeacher(ctx context.Context, actor models.Identity, activeOnly bool) ([]*models.Assignment, error)
	ListForStudent(ctx context.Context, actor models.Identity) ([]*StudentAssignmentView, error)

	Submit(ctx context.Context, actor models.Identity, assignmentID uint, req *SubmitAssignmentRequest) (*models.AssignmentSubmission, error)
	Grade(ctx context.Context, actor models.Identity, submissionID uint, req *GradeRequest) (*models.AssignmentSubmission, error)
	ListSubmissions(ctx context.Context, actor models.Identity, assignmentID uint) ([]*models.AssignmentSubmission, error)
}

type ProjectService interface {
	Create(ctx context.Context, actor models.Identity, req *CreateProjectRequest) (*models.Project, error)
	Update(ctx context.Context, actor models.Identity, projectID uint, req *UpdateProjectRequest) (*models.Project, error)
	ListByTeacher(ctx context.Context, actor models.Identity, activeOnly bool) ([]*models.Project, error)
	ListForStudent(ctx context.Context, actor models.Identity) ([]*StudentProjectView, error)

	Submit(ctx context.Context, actor models.Identity, projectID uint, req *SubmitProjectRequest) (*models.ProjectSubmission, error)
	Grade(ctx context.Context, actor models.Identity, submissionID uint, req *GradeRequest) (*models.ProjectSubmission, error)
	ListSubmissions(ctx context.Context, actor models.Identity, projectID uint) ([]*models.ProjectSubmission, error)
}

type AttendanceService interface {
	// Mark upserts one row per entry; re-marking a day overwrites it.
	Mark(ctx context.Context, actor models.Identity, req *MarkAttendanceRequest) (int, error)

	ListBySubjectDate(ctx context.Context, actor models.Identity, subjectID uint, date time.Time) ([]*models.Attendance, error)
	StudentStats(ctx context.Context, actor models.Identity, studentID uint, subjectID *uint) (repositories.AttendanceStats, error)
	StudentHistory(ctx context.Context, actor models.Identity, filters repositories.AttendanceFilters) ([]*models.Attendance, error)

	// SubjectOverview aggregates per-student counts across every marked date
	// of one subject.
	SubjectOverview(ctx context.Context, actor models.Identity, subjectID uint) ([]*repositories.SubjectAttendanceRow, error)
}

type AnnouncementService interface {
	// Publish creates the announcement and fans out one notification per
	// matching active user in the same transaction.
	Publish(ctx context.Context, actor models.Identity, req *CreateAnnouncementRequest) (*PublishResult, error)

	List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, error)
	Activate(ctx context.Context, actor models.Identity, announcementID uint) error
	Deactivate(ctx context.Context, actor models.Identity, announcementID uint) error
	Delete(ctx context.Context, actor models.Identity, announcementID uint) error
}

type CertificateService interface {
	Issue(ctx context.Context, actor models.Identity, req *IssueCertificateRequest) (*models.Certificate, error)

	// Verify is public: no identity required, lookup by code only.
	Verify(ctx context.Context, code string) (*CertificateVerification, error)

	ListByStudent(ctx context.Context, actor models.Identity, studentID uint) ([]*models.Certificate, error)
	List(ctx context.Context, actor models.Identity, limit, offset int) ([]*models.Certificate, int64, error)

	RenderPDF(ctx context.Context, actor models.Identity, certificateID uint) ([]byte, string, error)
}

type NotificationService interface {
	List(ctx context.Context, actor models.Identity, limit int) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, actor models.Identity) (int64, error)
	MarkRead(ctx context.Context, actor models.Identity, notificationID uint) error
	MarkAllRead(ctx context.Context, actor models.Identity) error

	// Notify appends a notification for a single user; used by the other
	// services for grade, submission and deadline events.
	Notify(ctx context.Context, userID uint, title, message string, kind models.NotificationType) error

	// SendDirect delivers a message from a teacher to a student enrolled in
	// one of their subjects.
	SendDirect(ctx context.Context, actor models.Identity, req *SendMessageRequest) (*models.Notification, error)
}

type ResumeService interface {
	Build(ctx context.Context, actor models.Identity, req *BuildResumeRequest) (*models.Resume, error)
	Upload(ctx context.Context, actor models.Identity, title, fileName string, size int64, data []byte) (*models.Resume, error)

	// Analyze stores the adapter's free text plus placeholder scores; adapter
	// failure stores the fallback message rather than failing.
	Analyze(ctx context.Context, actor models.Identity, resumeID uint) (*models.Resume, error)

	List(ctx context.Context, actor models.Identity) ([]*models.Resume, error)
	Delete(ctx context.Context, actor models.Identity, resumeID uint) error
	RenderPDF(ctx context.Context, actor models.Identity, resumeID uint) ([]byte, string, error)
}

type ExportService interface {
	StudentPerformanceCSV(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]byte, string, error)
	AttendanceSummaryCSV(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]byte, string, error)
	AssignmentAnalysisCSV(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]byte, string, error)
	UserActivityCSV(ctx context.Context, actor models.Identity) ([]byte, string, error)

	// ReportWorkbook bundles every report into one multi-sheet XLSX.
	ReportWorkbook(ctx context.Context, actor models.Identity, period repositories.ReportPeriod) ([]byte, string, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Admin() AdminService
	Dashboard() DashboardService
	Assignment() AssignmentService
	Project() ProjectService
	Attendance() AttendanceService
	Announcement() AnnouncementService
	Certificate() CertificateService
	Notification() NotificationService
	Resume() ResumeService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
