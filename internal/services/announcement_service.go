package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acadboost/academic-service/internal/events"
	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/validator"
)

type announcementService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewAnnouncementService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.BusinessValidator) AnnouncementService {
	return &announcementService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *announcementService) Publish(ctx context.Context, actor models.Identity, req *CreateAnnouncementRequest) (*PublishResult, error) {
	if err := requireStaff(actor, "announcement", "publish"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	// Resolve the optional department target to its name label, since users
	// carry the department as a free-text label.
	var departmentName *string
	if req.DepartmentID != nil {
		dept, err := s.repo.Department().GetByID(ctx, *req.DepartmentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewValidationError("department_id", "department does not exist", *req.DepartmentID)
			}
			return nil, fmt.Errorf("failed to load department: %w", err)
		}
		departmentName = &dept.Name
	}

	announcement := &models.Announcement{
		Title:        req.Title,
		Content:      req.Content,
		PostedBy:     actor.ID,
		TargetRole:   req.TargetRole,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
	}

	var notified int64

	// The announcement row and its notification fan-out commit together;
	// a failure rolls back both.
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Announcement().Create(ctx, announcement); err != nil {
			return fmt.Errorf("failed to create announcement: %w", err)
		}

		recipients, err := tx.User().ListActive(ctx, req.TargetRole, departmentName)
		if err != nil {
			return fmt.Errorf("failed to resolve recipients: %w", err)
		}

		notifications := make([]*models.Notification, 0, len(recipients))
		for _, user := range recipients {
			notifications = append(notifications, &models.Notification{
				UserID:  user.ID,
				Title:   "Announcement: " + req.Title,
				Message: req.Content,
				Type:    models.NotificationAnnouncement,
			})
		}
		if err := tx.Notification().CreateBatch(ctx, notifications); err != nil {
			return fmt.Errorf("failed to fan out notifications: %w", err)
		}

		notified = int64(len(recipients))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.Event{
			Type: events.EventAnnouncementPublished,
			Data: map[string]interface{}{
				"announcement_id": announcement.ID,
				"posted_by":       actor.ID,
				"notified_users":  notified,
			},
		}); err != nil {
			s.logger.Warn("Failed to publish event", "error", err, "type", events.EventAnnouncementPublished)
		}
	}

	s.logger.Info("Announcement published",
		"announcement_id", announcement.ID,
		"posted_by", actor.ID,
		"notified_users", notified)

	return &PublishResult{Announcement: announcement, NotifiedUsers: notified}, nil
}

func (s *announcementService) List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, error) {
	return s.repo.Announcement().List(ctx, filters)
}

func (s *announcementService) Activate(ctx context.Context, actor models.Identity, announcementID uint) error {
	if err := s.checkOwnership(ctx, actor, announcementID, "activate"); err != nil {
		return err
	}
	return s.repo.Announcement().SetActive(ctx, announcementID, true)
}

func (s *announcementService) Deactivate(ctx context.Context, actor models.Identity, announcementID uint) error {
	if err := s.checkOwnership(ctx, actor, announcementID, "deactivate"); err != nil {
		return err
	}
	return s.repo.Announcement().SetActive(ctx, announcementID, false)
}

func (s *announcementService) Delete(ctx context.Context, actor models.Identity, announcementID uint) error {
	if err := s.checkOwnership(ctx, actor, announcementID, "delete"); err != nil {
		return err
	}
	return s.repo.Announcement().Delete(ctx, announcementID)
}

// checkOwnership lets admins manage any announcement and teachers only their
// own.
func (s *announcementService) checkOwnership(ctx context.Context, actor models.Identity, announcementID uint, action string) error {
	if err := requireStaff(actor, "announcement", action); err != nil {
		return err
	}

	announcement, err := s.repo.Announcement().GetByID(ctx, announcementID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load announcement: %w", err)
	}

	if actor.Role != models.RoleAdmin && announcement.PostedBy != actor.ID {
		return NewPermissionError(actor.ID, announcementID, "announcement", action, "not the author")
	}
	return nil
}
