package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/acadboost/academic-service/internal/cache"
	"github.com/acadboost/academic-service/internal/repositories"
)

// PostgresRepository implements the main Repository interface.
type PostgresRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user                 repositories.UserRepository
	department           repositories.DepartmentRepository
	subject              repositories.SubjectRepository
	enrollment           repositories.EnrollmentRepository
	attendance           repositories.AttendanceRepository
	assignment           repositories.AssignmentRepository
	assignmentSubmission repositories.AssignmentSubmissionRepository
	project              repositories.ProjectRepository
	projectSubmission    repositories.ProjectSubmissionRepository
	result               repositories.ResultRepository
	certificate          repositories.CertificateRepository
	announcement         repositories.AnnouncementRepository
	notification         repositories.NotificationRepository
	resume               repositories.ResumeRepository
	report               repositories.ReportRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgresRepository creates a repository manager with all sub-repositories.
func NewPostgresRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &PostgresRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}
	repo.bind(config.DB)
	return repo
}

// bind wires sub-repositories against the given handle; WithTransaction uses
// it to rebind everything onto one transaction.
func (r *PostgresRepository) bind(db *gorm.DB) {
	r.user = NewUserPostgres(db)
	r.department = NewDepartmentPostgres(db)
	r.subject = NewSubjectPostgres(db)
	r.enrollment = NewEnrollmentPostgres(db)
	r.attendance = NewAttendancePostgres(db)
	r.assignment = NewAssignmentPostgres(db)
	r.assignmentSubmission = NewAssignmentSubmissionPostgres(db)
	r.project = NewProjectPostgres(db)
	r.projectSubmission = NewProjectSubmissionPostgres(db)
	r.result = NewResultPostgres(db)
	r.certificate = NewCertificatePostgres(db)
	r.announcement = NewAnnouncementPostgres(db)
	r.notification = NewNotificationPostgres(db)
	r.resume = NewResumePostgres(db)
	r.report = NewReportPostgres(db, r.cacheManager)
}

func (r *PostgresRepository) User() repositories.UserRepository             { return r.user }
func (r *PostgresRepository) Department() repositories.DepartmentRepository { return r.department }
func (r *PostgresRepository) Subject() repositories.SubjectRepository       { return r.subject }
func (r *PostgresRepository) Enrollment() repositories.EnrollmentRepository { return r.enrollment }
func (r *PostgresRepository) Attendance() repositories.AttendanceRepository { return r.attendance }
func (r *PostgresRepository) Assignment() repositories.AssignmentRepository { return r.assignment }
func (r *PostgresRepository) AssignmentSubmission() repositories.AssignmentSubmissionRepository {
	return r.assignmentSubmission
}
func (r *PostgresRepository) Project() repositories.ProjectRepository { return r.project }
func (r *PostgresRepository) ProjectSubmission() repositories.ProjectSubmissionRepository {
	return r.projectSubmission
}
func (r *PostgresRepository) Result() repositories.ResultRepository           { return r.result }
func (r *PostgresRepository) Certificate() repositories.CertificateRepository { return r.certificate }
func (r *PostgresRepository) Announcement() repositories.AnnouncementRepository {
	return r.announcement
}
func (r *PostgresRepository) Notification() repositories.NotificationRepository {
	return r.notification
}
func (r *PostgresRepository) Resume() repositories.ResumeRepository { return r.resume }
func (r *PostgresRepository) Report() repositories.ReportRepository { return r.report }

// WithTransaction runs fn against a repository bound to a single database
// transaction. Any error from fn rolls the whole unit back.
func (r *PostgresRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgresRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}
		txRepo.bind(tx)
		return fn(txRepo)
	})
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// ===== REPOSITORY MANAGER =====

type repositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &repositoryManager{config: config}
}

func (m *repositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repo = NewPostgresRepository(m.config)
	return nil
}

func (m *repositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) HealthCheck(ctx context.Context) error {
	return m.repo.Ping(ctx)
}

func (m *repositoryManager) Shutdown(ctx context.Context) error {
	return m.repo.Close()
}
