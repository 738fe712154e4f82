package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	adminHandler        *AdminHandler
	dashboardHandler    *DashboardHandler
	assignmentHandler   *AssignmentHandler
	projectHandler      *ProjectHandler
	attendanceHandler   *AttendanceHandler
	announcementHandler *AnnouncementHandler
	certificateHandler  *CertificateHandler
	notificationHandler *NotificationHandler
	resumeHandler       *ResumeHandler
	exportHandler       *ExportHandler
	authMiddleware      *SessionAuthMiddleware
	serviceManager      services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		adminHandler:        NewAdminHandler(serviceManager.Admin(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		assignmentHandler:   NewAssignmentHandler(serviceManager.Assignment(), logger),
		projectHandler:      NewProjectHandler(serviceManager.Project(), logger),
		attendanceHandler:   NewAttendanceHandler(serviceManager.Attendance(), logger),
		announcementHandler: NewAnnouncementHandler(serviceManager.Announcement(), logger),
		certificateHandler:  NewCertificateHandler(serviceManager.Certificate(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		resumeHandler:       NewResumeHandler(serviceManager.Resume(), logger),
		exportHandler:       NewExportHandler(serviceManager.Export(), logger),
		authMiddleware:      NewSessionAuthMiddleware(serviceManager.Auth()),
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes: login and certificate verification need no session.
	api.POST("/auth/login", hm.authHandler.Login)
	api.GET("/verify/:code", hm.certificateHandler.VerifyCertificate)

	authed := api.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Session and account
		authed.POST("/auth/logout", hm.authHandler.Logout)
		authed.GET("/auth/me", hm.authHandler.Me)
		authed.PUT("/auth/password", hm.authHandler.ChangePassword)
		authed.PUT("/auth/profile", hm.authHandler.UpdateProfile)

		// Shared routes - any authenticated role
		authed.GET("/dashboard", hm.dashboardHandler.GetSummary)
		authed.GET("/announcements", hm.announcementHandler.ListAnnouncements)

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.GET("/unread-count", hm.notificationHandler.GetUnreadCount)
			notifications.POST("/:id/read", hm.notificationHandler.MarkRead)
			notifications.POST("/read-all", hm.notificationHandler.MarkAllRead)
		}

		// Admin routes
		admin := authed.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.POST("/users", hm.adminHandler.CreateUser)
			admin.PUT("/users/:id", hm.adminHandler.UpdateUser)
			admin.GET("/users", hm.adminHandler.ListUsers)

			admin.POST("/departments", hm.adminHandler.CreateDepartment)

			admin.POST("/subjects", hm.adminHandler.CreateSubject)
			admin.PUT("/subjects/:id", hm.adminHandler.UpdateSubject)

			admin.POST("/enrollments", hm.adminHandler.EnrollStudent)
			admin.POST("/results", hm.adminHandler.UpsertResult)

			admin.GET("/reports/user-activity", hm.dashboardHandler.GetUserActivityReport)
			admin.GET("/exports/user-activity", hm.exportHandler.ExportUserActivity)
			admin.GET("/dashboard/departments", hm.dashboardHandler.GetDepartmentSummaries)
		}

		// Staff routes - Teachers and Admins
		teacher := authed.Group("/teacher")
		teacher.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher))
		{
			teacher.GET("/departments", hm.adminHandler.ListDepartments)
			teacher.GET("/subjects", hm.adminHandler.ListSubjects)

			teacher.POST("/assignments", hm.assignmentHandler.CreateAssignment)
			teacher.PUT("/assignments/:id", hm.assignmentHandler.UpdateAssignment)
			teacher.GET("/assignments", hm.assignmentHandler.ListTeacherAssignments)
			teacher.GET("/assignments/:id/submissions", hm.assignmentHandler.ListSubmissions)
			teacher.POST("/submissions/:id/grade", hm.assignmentHandler.GradeSubmission)

			teacher.POST("/projects", hm.projectHandler.CreateProject)
			teacher.PUT("/projects/:id", hm.projectHandler.UpdateProject)
			teacher.GET("/projects", hm.projectHandler.ListTeacherProjects)
			teacher.GET("/projects/:id/submissions", hm.projectHandler.ListSubmissions)
			teacher.POST("/project-submissions/:id/grade", hm.projectHandler.GradeSubmission)

			teacher.POST("/attendance", hm.attendanceHandler.MarkAttendance)
			teacher.GET("/subjects/:id/attendance", hm.attendanceHandler.ListBySubjectDate)
			teacher.GET("/subjects/:id/attendance/overview", hm.attendanceHandler.GetSubjectOverview)

			teacher.POST("/messages", hm.notificationHandler.SendMessage)

			teacher.POST("/announcements", hm.announcementHandler.PublishAnnouncement)
			teacher.POST("/announcements/:id/activate", hm.announcementHandler.ActivateAnnouncement)
			teacher.POST("/announcements/:id/deactivate", hm.announcementHandler.DeactivateAnnouncement)
			teacher.DELETE("/announcements/:id", hm.announcementHandler.DeleteAnnouncement)

			teacher.POST("/certificates", hm.certificateHandler.IssueCertificate)
			teacher.GET("/certificates", hm.certificateHandler.ListCertificates)

			teacher.GET("/dashboard/subject-performance", hm.dashboardHandler.GetSubjectPerformance)
			teacher.GET("/reports/student-performance", hm.dashboardHandler.GetStudentPerformanceReport)
			teacher.GET("/reports/attendance-summary", hm.dashboardHandler.GetAttendanceSummaryReport)
			teacher.GET("/reports/assignment-analysis", hm.dashboardHandler.GetAssignmentAnalysisReport)
			teacher.GET("/reports/subject-comparison", hm.dashboardHandler.GetSubjectComparisonReport)

			teacher.GET("/exports/student-performance", hm.exportHandler.ExportStudentPerformance)
			teacher.GET("/exports/attendance-summary", hm.exportHandler.ExportAttendanceSummary)
			teacher.GET("/exports/assignment-analysis", hm.exportHandler.ExportAssignmentAnalysis)
			teacher.GET("/exports/workbook", hm.exportHandler.ExportWorkbook)
		}

		// Student routes - Students only
		student := authed.Group("/student")
		student.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
		{
			student.GET("/assignments", hm.assignmentHandler.ListStudentAssignments)
			student.POST("/assignments/:id/submit", hm.assignmentHandler.SubmitAssignment)

			student.GET("/projects", hm.projectHandler.ListStudentProjects)
			student.POST("/projects/:id/submit", hm.projectHandler.SubmitProject)

			student.GET("/attendance", hm.attendanceHandler.GetStudentHistory)
			student.GET("/attendance/stats", hm.attendanceHandler.GetStudentStats)

			student.GET("/results", hm.dashboardHandler.GetStudentResults)
			student.GET("/insights", hm.dashboardHandler.GetPerformanceInsights)

			student.GET("/certificates", hm.certificateHandler.ListStudentCertificates)
			student.GET("/certificates/:id/download", hm.certificateHandler.DownloadCertificate)

			student.POST("/resumes", hm.resumeHandler.BuildResume)
			student.POST("/resumes/upload", hm.resumeHandler.UploadResume)
			student.GET("/resumes", hm.resumeHandler.ListResumes)
			student.POST("/resumes/:id/analyze", hm.resumeHandler.AnalyzeResume)
			student.DELETE("/resumes/:id", hm.resumeHandler.DeleteResume)
			student.GET("/resumes/:id/download", hm.resumeHandler.DownloadResume)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "academic-service",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "academic-service",
		})
	})
}
