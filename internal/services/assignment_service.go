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

type assignmentService struct {
	repo      repositories.Repository
	notifier  NotificationService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewAssignmentService(repo repositories.Repository, notifier NotificationService, publisher events.EventPublisher, logger *slog.Logger, v *validator.BusinessValidator) AssignmentService {
	return &assignmentService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func requireTeacher(actor models.Identity, resource, action string) error {
	if actor.Role != models.RoleTeacher {
		return NewPermissionError(actor.ID, 0, resource, action, "teacher role required")
	}
	return nil
}

func requireStudent(actor models.Identity, resource, action string) error {
	if actor.Role != models.RoleStudent {
		return NewPermissionError(actor.ID, 0, resource, action, "student role required")
	}
	return nil
}

func (s *assignmentService) Create(ctx context.Context, actor models.Identity, req *CreateAssignmentRequest) (*models.Assignment, error) {
	if err := requireTeacher(actor, "assignment", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
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
		return nil, NewPermissionError(actor.ID, req.SubjectID, "subject", "create_assignment", "not assigned to this subject")
	}

	assignment := &models.Assignment{
		Title:       req.Title,
		Description: req.Description,
		SubjectID:   req.SubjectID,
		TeacherID:   actor.ID,
		DueDate:     parseDate(req.DueDate),
		MaxMarks:    req.MaxMarks,
		IsActive:    true,
	}
	if assignment.MaxMarks == 0 {
		assignment.MaxMarks = 100
	}

	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.notifyEnrolled(ctx, req.SubjectID,
		"New assignment: "+assignment.Title,
		fmt.Sprintf("%s posted a new assignment in %s, due %s.", actor.FullName, subject.Name, req.DueDate),
		models.NotificationAssignment)

	s.logger.Info("Assignment created", "assignment_id", assignment.ID, "subject_id", req.SubjectID, "teacher_id", actor.ID)
	return assignment, nil
}

// notifyEnrolled fans a notification out to every student enrolled in the
// subject. Delivery is best-effort; failures are logged, never returned.
func (s *assignmentService) notifyEnrolled(ctx context.Context, subjectID uint, title, message string, kind models.NotificationType) {
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

func (s *assignmentService) Update(ctx context.Context, actor models.Identity, assignmentID uint, req *UpdateAssignmentRequest) (*models.Assignment, error) {
	if err := requireTeacher(actor, "assignment", "update"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if assignment.TeacherID != actor.ID {
		return nil, NewPermissionError(actor.ID, assignmentID, "assignment", "update", "not the owning teacher")
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.DueDate != nil {
		assignment.DueDate = parseDate(*req.DueDate)
	}
	if req.MaxMarks != nil {
		assignment.MaxMarks = *req.MaxMarks
	}
	if req.IsActive != nil {
		assignment.IsActive = *req.IsActive
	}

	if err := s.repo.Assignment().Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) ListByTeacher(ctx context.Context, actor models.Identity, activeOnly bool) ([]*models.Assignment, error) {
	if err := requireTeacher(actor, "assignment", "list"); err != nil {
		return nil, err
	}
	return s.repo.Assignment().ListByTeacher(ctx, actor.ID, activeOnly)
}

func (s *assignmentService) ListForStudent(ctx context.Context, actor models.Identity) ([]*StudentAssignmentView, error) {
	if err := requireStudent(actor, "assignment", "list"); err != nil {
		return nil, err
	}

	assignments, err := s.repo.Assignment().ListForStudent(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	today := time.Now()
	views := make([]*StudentAssignmentView, 0, len(assignments))
	for _, a := range assignments {
		view := &StudentAssignmentView{
			Assignment:    a,
			DeadlineState: ClassifyDeadline(a.DueDate, today, AssignmentDueSoonDays),
		}
		submission, err := s.repo.AssignmentSubmission().GetByAssignmentAndStudent(ctx, a.ID, actor.ID)
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

func (s *assignmentService) Submit(ctx context.Context, actor models.Identity, assignmentID uint, req *SubmitAssignmentRequest) (*models.AssignmentSubmission, error) {
	if err := requireStudent(actor, "assignment", "submit"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	if req.Content == "" && req.FilePath == "" {
		return nil, NewValidationError("content", "submission needs text or a file", nil)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if !assignment.IsActive {
		return nil, NewValidationError("assignment_id", "assignment is closed", assignmentID)
	}

	enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, actor.ID, assignment.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, NewPermissionError(actor.ID, assignmentID, "assignment", "submit", "not enrolled in this subject")
	}

	submission := &models.AssignmentSubmission{
		AssignmentID:   assignmentID,
		StudentID:      actor.ID,
		SubmissionText: req.Content,
		FilePath:       req.FilePath,
		SubmittedAt:    time.Now(),
	}
	if err := s.repo.AssignmentSubmission().Upsert(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	if err := s.notifier.Notify(ctx, assignment.TeacherID,
		"New assignment submission",
		fmt.Sprintf("%s submitted %q", actor.FullName, assignment.Title),
		models.NotificationAssignment); err != nil {
		s.logger.Warn("Failed to notify teacher of submission", "error", err, "assignment_id", assignmentID)
	}

	s.publishEvent(ctx, events.EventSubmissionCreated, map[string]interface{}{
		"kind":          "assignment",
		"assignment_id": assignmentID,
		"student_id":    actor.ID,
	})

	s.logger.Info("Assignment submitted", "assignment_id", assignmentID, "student_id", actor.ID)
	return submission, nil
}

func (s *assignmentService) Grade(ctx context.Context, actor models.Identity, submissionID uint, req *GradeRequest) (*models.AssignmentSubmission, error) {
	if err := requireTeacher(actor, "submission", "grade"); err != nil {
		return nil, err
	}

	submission, err := s.repo.AssignmentSubmission().GetByID(ctx, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if assignment.TeacherID != actor.ID {
		return nil, NewPermissionError(actor.ID, submissionID, "submission", "grade", "not the owning teacher")
	}

	if errs := s.validator.ValidateGrade(req, assignment.MaxMarks); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.AssignmentSubmission().UpdateGrade(ctx, submissionID, req.Marks, req.Feedback, actor.ID); err != nil {
		return nil, fmt.Errorf("failed to record grade: %w", err)
	}

	if err := s.notifier.Notify(ctx, submission.StudentID,
		"Assignment graded",
		fmt.Sprintf("%q was graded: %d/%d", assignment.Title, req.Marks, assignment.MaxMarks),
		models.NotificationGrade); err != nil {
		s.logger.Warn("Failed to notify student of grade", "error", err, "submission_id", submissionID)
	}

	s.publishEvent(ctx, events.EventSubmissionGraded, map[string]interface{}{
		"kind":          "assignment",
		"submission_id": submissionID,
		"graded_by":     actor.ID,
		"marks":         req.Marks,
	})

	return s.repo.AssignmentSubmission().GetByID(ctx, submissionID)
}

func (s *assignmentService) ListSubmissions(ctx context.Context, actor models.Identity, assignmentID uint) ([]*models.AssignmentSubmission, error) {
	if err := requireTeacher(actor, "submission", "list"); err != nil {
		return nil, err
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if assignment.TeacherID != actor.ID {
		return nil, NewPermissionError(actor.ID, assignmentID, "assignment", "list_submissions", "not the owning teacher")
	}

	return s.repo.AssignmentSubmission().ListByAssignment(ctx, assignmentID)
}

func (s *assignmentService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.Event{Type: eventType, Data: data}); err != nil {
		s.logger.Warn("Failed to publish event", "error", err, "type", eventType)
	}
}
