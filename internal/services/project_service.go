package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/acadboost/academic-service/internal/events"
	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/validator"
)

type projectService struct {
	repo      repositories.Repository
	notifier  NotificationService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewProjectService(repo repositories.Repository, notifier NotificationService, publisher events.EventPublisher, logger *slog.Logger, v *validator.BusinessValidator) ProjectService {
	return &projectService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *projectService) Create(ctx context.Context, actor models.Identity, req *CreateProjectRequest) (*models.Project, error) {
	if err := requireTeacher(actor, "project", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.ValidateProjectCreate(req); len(errs) > 0 {
		return nil, errs
	}

	subject, err := s.repo.Subject().GetByID(ctx, req.SubjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("subject_id", "subject does not exist", req.SubjectID)
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	if subject.TeacherID != actor.ID {
		return nil, NewPermissionError(actor.ID, req.SubjectID, "subject", "create_project", "not assigned to this subject")
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		SubjectID:   req.SubjectID,
		TeacherID:   actor.ID,
		StartDate:   parseDate(req.StartDate),
		EndDate:     parseDate(req.EndDate),
		MaxMarks:    req.MaxMarks,
		Status:      models.ProjectActive,
	}
	if project.MaxMarks == 0 {
		project.MaxMarks = 100
	}

	if err := s.repo.Project().Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.notifyEnrolled(ctx, req.SubjectID,
		"New project: "+project.Title,
		fmt.Sprintf("%s posted a new project in %s, running until %s.", actor.FullName, subject.Name, req.EndDate),
		models.NotificationProject)

	s.logger.Info("Project created", "project_id", project.ID, "subject_id", req.SubjectID, "teacher_id", actor.ID)
	return project, nil
}

func (s *projectService) notifyEnrolled(ctx context.Context, subjectID uint, title, message string, kind models.NotificationType) {
	enrollments, err := s.repo.Enrollment().ListBySubject(ctx, subjectID)
	if err != nil {
		s.logger.Warn("Failed to list enrollments for notification", "error", err, "subject_id", subjectID)
		return
	}
	for _, enrollment := range enrollments {
		if err := s.notifier.Notify(ctx, enrollment.StudentID, title, message, kind); err != nil {
			s.logger.Warn("Failed to notify student", "error", err, "student_id", enrollment.StudentID)
		}
	}
}

func (s *projectService) Update(ctx context.Context, actor models.Identity, projectID uint, req *UpdateProjectRequest) (*models.Project, error) {
	if err := requireTeacher(actor, "project", "update"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	project, err := s.repo.Project().GetByID(ctx, projectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project.TeacherID != actor.ID {
		return nil, NewPermissionError(actor.ID, projectID, "project", "update", "not the owning teacher")
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.EndDate != nil {
		endDate := parseDate(*req.EndDate)
		if endDate.Before(project.StartDate) {
			return nil, NewValidationError("end_date", "must not be before start_date", *req.EndDate)
		}
		project.EndDate = endDate
	}
	if req.MaxMarks != nil {
		project.MaxMarks = *req.MaxMarks
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
	}

	if err := s.repo.Project().Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *projectService) ListByTeacher(ctx context.Context, actor models.Identity, activeOnly bool) ([]*models.Project, error) {
	if err := requireTeacher(actor, "project", "list"); err != nil {
		return nil, err
	}
	return s.repo.Project().ListByTeacher(ctx, actor.ID, activeOnly)
}

func (s *projectService) ListForStudent(ctx context.Context, actor models.Identity) ([]*StudentProjectView, error) {
	if err := requireStudent(actor, "project", "list"); err != nil {
		return nil, err
	}

	projects, err := s.repo.Project().ListForStudent(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	today := time.Now()
	views := make([]*StudentProjectView, 0, len(projects))
	for _, p := range projects {
		view := &StudentProjectView{
			Project:       p,
			DeadlineState: ClassifyDeadline(p.EndDate, today, ProjectDueSoonDays),
		}
		submission, err := s.repo.ProjectSubmission().GetByProjectAndStudent(ctx, p.ID, actor.ID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load submission: %w", err)
		}
		if submission != nil {
			view.Submission = submission
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *projectService) Submit(ctx context.Context, actor models.Identity, projectID uint, req *SubmitProjectRequest) (*models.ProjectSubmission, error) {
	if err := requireStudent(actor, "project", "submit"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	project, err := s.repo.Project().GetByID(ctx, projectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project.Status != models.ProjectActive {
		return nil, NewValidationError("project_id", "project is closed", projectID)
	}

	enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, actor.ID, project.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, NewPermissionError(actor.ID, projectID, "project", "submit", "not enrolled in this subject")
	}

	submission := &models.ProjectSubmission{
		ProjectID:   projectID,
		StudentID:   actor.ID,
		Title:       req.Title,
		Description: req.Description,
		GithubURL:   req.GithubURL,
		FilePath:    req.FilePath,
		SubmittedAt: time.Now(),
	}
	if err := s.repo.ProjectSubmission().Upsert(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	if err := s.notifier.Notify(ctx, project.TeacherID,
		"New project submission",
		fmt.Sprintf("%s submitted %q", actor.FullName, project.Title),
		models.NotificationProject); err != nil {
		s.logger.Warn("Failed to notify teacher of submission", "error", err, "project_id", projectID)
	}

	s.publishEvent(ctx, events.EventSubmissionCreated, map[string]interface{}{
		"kind":       "project",
		"project_id": projectID,
		"student_id": actor.ID,
	})

	s.logger.Info("Project submitted", "project_id", projectID, "student_id", actor.ID)
	return submission, nil
}

func (s *projectService) Grade(ctx context.Context, actor models.Identity, submissionID uint, req *GradeRequest) (*models.ProjectSubmission, error) {
	if err := requireTeacher(actor, "submission", "grade"); err != nil {
		return nil, err
	}

	submission, err := s.repo.ProjectSubmission().GetByID(ctx, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	project, err := s.repo.Project().GetByID(ctx, submission.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project.TeacherID != actor.ID {
		return nil, NewPermissionError(actor.ID, submissionID, "submission", "grade", "not the owning teacher")
	}

	if errs := s.validator.ValidateGrade(req, project.MaxMarks); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.ProjectSubmission().UpdateGrade(ctx, submissionID, req.Marks, req.Feedback, actor.ID); err != nil {
		return nil, fmt.Errorf("failed to record grade: %w", err)
	}

	if err := s.notifier.Notify(ctx, submission.StudentID,
		"Project graded",
		fmt.Sprintf("%q was graded: %d/%d", project.Title, req.Marks, project.MaxMarks),
		models.NotificationGrade); err != nil {
		s.logger.Warn("Failed to notify student of grade", "error", err, "submission_id", submissionID)
	}

	s.publishEvent(ctx, events.EventSubmissionGraded, map[string]interface{}{
		"kind":          "project",
		"submission_id": submissionID,
		"graded_by":     actor.ID,
		"marks":         req.Marks,
	})

	return s.repo.ProjectSubmission().GetByID(ctx, submissionID)
}

func (s *projectService) ListSubmissions(ctx context.Context, actor models.Identity, projectID uint) ([]*models.ProjectSubmission, error) {
	if err := requireTeacher(actor, "submission", "list"); err != nil {
		return nil, err
	}

	project, err := s.repo.Project().GetByID(ctx, projectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project.TeacherID != actor.ID {
		return nil, NewPermissionError(actor.ID, projectID, "project", "list_submissions", "not the owning teacher")
	}

	return s.repo.ProjectSubmission().ListByProject(ctx, projectID)
}

func (s *projectService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.Event{Type: eventType, Data: data}); err != nil {
		s.logger.Warn("Failed to publish event", "error", err, "type", eventType)
	}
}
