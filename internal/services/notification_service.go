package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/validator"
)

type notificationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewNotificationService(repo repositories.Repository, logger *slog.Logger, v *validator.BusinessValidator) NotificationService {
	return &notificationService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

const defaultNotificationLimit = 50

func (s *notificationService) List(ctx context.Context, actor models.Identity, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return s.repo.Notification().ListByUser(ctx, actor.ID, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, actor models.Identity) (int64, error) {
	return s.repo.Notification().CountUnread(ctx, actor.ID)
}

func (s *notificationService) MarkRead(ctx context.Context, actor models.Identity, notificationID uint) error {
	// The user filter in the repository keeps one user from marking
	// another's notifications.
	err := s.repo.Notification().MarkRead(ctx, notificationID, actor.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor models.Identity) error {
	return s.repo.Notification().MarkAllRead(ctx, actor.ID)
}

func (s *notificationService) SendDirect(ctx context.Context, actor models.Identity, req *SendMessageRequest) (*models.Notification, error) {
	if err := requireStaff(actor, "message", "send"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	student, err := s.repo.User().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("student_id", "student does not exist", req.StudentID)
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if student.Role != models.RoleStudent || !student.IsActive {
		return nil, NewValidationError("student_id", "recipient must be an active student", req.StudentID)
	}

	// Admins may message any student; teachers only their own.
	if actor.Role == models.RoleTeacher {
		enrolled, err := s.repo.Enrollment().IsEnrolledWithTeacher(ctx, req.StudentID, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return nil, NewPermissionError(actor.ID, req.StudentID, "message", "send", "student is not enrolled in any of your subjects")
		}
	}

	notification := &models.Notification{
		UserID:  req.StudentID,
		Title:   req.Title,
		Message: req.Message,
		Type:    models.NotificationMessage,
	}
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Info("Direct message sent", "from", actor.ID, "to", req.StudentID)
	return notification, nil
}

func (s *notificationService) Notify(ctx context.Context, userID uint, title, message string, kind models.NotificationType) error {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
	}
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
