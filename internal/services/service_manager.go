package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/acadboost/academic-service/internal/ai"
	"github.com/acadboost/academic-service/internal/events"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/sessions"
	"github.com/acadboost/academic-service/internal/storage"
	"github.com/acadboost/academic-service/internal/validator"
)

// ServiceManagerConfig holds cross-service settings.
type ServiceManagerConfig struct {
	CertificateAutoVerify bool
}

// serviceManager implements ServiceManager
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.BusinessValidator
	sessions  sessions.Store
	publisher events.EventPublisher
	generator ai.TextGenerator
	files     *storage.Store
	config    ServiceManagerConfig

	// Service instances
	authService         AuthService
	adminService        AdminService
	dashboardService    DashboardService
	assignmentService   AssignmentService
	projectService      ProjectService
	attendanceService   AttendanceService
	announcementService AnnouncementService
	certificateService  CertificateService
	notificationService NotificationService
	resumeService       ResumeService
	exportService       ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.BusinessValidator,
	store sessions.Store,
	publisher events.EventPublisher,
	generator ai.TextGenerator,
	files *storage.Store,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		sessions:  store,
		publisher: publisher,
		generator: generator,
		files:     files,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	// Notification service first; the workflow services depend on it.
	sm.notificationService = NewNotificationService(sm.repo, sm.logger, sm.validator)

	sm.authService = NewAuthService(sm.repo, sm.sessions, sm.logger, sm.validator)
	sm.adminService = NewAdminService(sm.repo, sm.logger, sm.validator)
	sm.dashboardService = NewDashboardService(sm.repo, sm.generator, sm.logger)
	sm.assignmentService = NewAssignmentService(sm.repo, sm.notificationService, sm.publisher, sm.logger, sm.validator)
	sm.projectService = NewProjectService(sm.repo, sm.notificationService, sm.publisher, sm.logger, sm.validator)
	sm.attendanceService = NewAttendanceService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.announcementService = NewAnnouncementService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.certificateService = NewCertificateService(sm.repo, sm.notificationService, sm.publisher, sm.logger, sm.validator, sm.config.CertificateAutoVerify)
	sm.resumeService = NewResumeService(sm.repo, sm.files, sm.generator, sm.logger, sm.validator)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) get(name string, ready bool) {
	if !sm.initialized {
		panic("service manager not initialized")
	}
	if !ready {
		panic(name + " service not initialized")
	}
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("auth", sm.authService != nil)
	return sm.authService
}

func (sm *serviceManager) Admin() AdminService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("admin", sm.adminService != nil)
	return sm.adminService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("dashboard", sm.dashboardService != nil)
	return sm.dashboardService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("assignment", sm.assignmentService != nil)
	return sm.assignmentService
}

func (sm *serviceManager) Project() ProjectService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("project", sm.projectService != nil)
	return sm.projectService
}

func (sm *serviceManager) Attendance() AttendanceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("attendance", sm.attendanceService != nil)
	return sm.attendanceService
}

func (sm *serviceManager) Announcement() AnnouncementService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("announcement", sm.announcementService != nil)
	return sm.announcementService
}

func (sm *serviceManager) Certificate() CertificateService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("certificate", sm.certificateService != nil)
	return sm.certificateService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("notification", sm.notificationService != nil)
	return sm.notificationService
}

func (sm *serviceManager) Resume() ResumeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("resume", sm.resumeService != nil)
	return sm.resumeService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("export", sm.exportService != nil)
	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}
	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
