package repositories

import "context"

// Repository aggregates all entity repositories behind one access point.
type Repository interface {
	// Identity domain
	User() UserRepository
	Department() DepartmentRepository

	// Academic structure
	Subject() SubjectRepository
	Enrollment() EnrollmentRepository

	// Day-to-day records
	Attendance() AttendanceRepository
	Assignment() AssignmentRepository
	AssignmentSubmission() AssignmentSubmissionRepository
	Project() ProjectRepository
	ProjectSubmission() ProjectSubmissionRepository

	// Outcomes
	Result() ResultRepository
	Certificate() CertificateRepository

	// Messaging
	Announcement() AnnouncementRepository
	Notification() NotificationRepository

	// Career
	Resume() ResumeRepository

	// Cross-entity reporting
	Report() ReportRepository

	// Transaction support: fn runs against a Repository bound to one
	// transaction; any error rolls the whole unit back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
