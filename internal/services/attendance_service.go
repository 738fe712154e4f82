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

type attendanceService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewAttendanceService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.BusinessValidator) AttendanceService {
	return &attendanceService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *attendanceService) Mark(ctx context.Context, actor models.Identity, req *MarkAttendanceRequest) (int, error) {
	if err := requireTeacher(actor, "attendance", "mark"); err != nil {
		return 0, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return 0, errs
	}

	subject, err := s.repo.Subject().GetByID(ctx, req.SubjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, NewValidationError("subject_id", "subject does not exist", req.SubjectID)
		}
		return 0, fmt.Errorf("failed to load subject: %w", err)
	}
	if subject.TeacherID != actor.ID {
		return 0, NewPermissionError(actor.ID, req.SubjectID, "subject", "mark_attendance", "not assigned to this subject")
	}

	date := parseDate(req.Date)

	// All rows for one marking sheet land or none do.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, entry := range req.Entries {
			enrolled, err := tx.Enrollment().IsEnrolled(ctx, entry.StudentID, req.SubjectID)
			if err != nil {
				return fmt.Errorf("failed to check enrollment: %w", err)
			}
			if !enrolled {
				return NewValidationError("student_id", "student is not enrolled in this subject", entry.StudentID)
			}

			record := &models.Attendance{
				StudentID: entry.StudentID,
				SubjectID: req.SubjectID,
				Date:      date,
				Status:    entry.Status,
				MarkedBy:  actor.ID,
			}
			if err := tx.Attendance().Upsert(ctx, record); err != nil {
				return fmt.Errorf("failed to save attendance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.Event{
			Type: events.EventAttendanceMarked,
			Data: map[string]interface{}{
				"subject_id": req.SubjectID,
				"date":       req.Date,
				"entries":    len(req.Entries),
				"marked_by":  actor.ID,
			},
		}); err != nil {
			s.logger.Warn("Failed to publish event", "error", err, "type", events.EventAttendanceMarked)
		}
	}

	s.logger.Info("Attendance marked",
		"subject_id", req.SubjectID,
		"date", req.Date,
		"entries", len(req.Entries),
		"marked_by", actor.ID)
	return len(req.Entries), nil
}

func (s *attendanceService) ListBySubjectDate(ctx context.Context, actor models.Identity, subjectID uint, date time.Time) ([]*models.Attendance, error) {
	if err := requireStaff(actor, "attendance", "list"); err != nil {
		return nil, err
	}

	if actor.Role == models.RoleTeacher {
		subject, err := s.repo.Subject().GetByID(ctx, subjectID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to load subject: %w", err)
		}
		if subject.TeacherID != actor.ID {
			return nil, NewPermissionError(actor.ID, subjectID, "subject", "view_attendance", "not assigned to this subject")
		}
	}

	return s.repo.Attendance().ListBySubjectDate(ctx, subjectID, date)
}

func (s *attendanceService) SubjectOverview(ctx context.Context, actor models.Identity, subjectID uint) ([]*repositories.SubjectAttendanceRow, error) {
	if err := requireStaff(actor, "attendance", "overview"); err != nil {
		return nil, err
	}

	if actor.Role == models.RoleTeacher {
		subject, err := s.repo.Subject().GetByID(ctx, subjectID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to load subject: %w", err)
		}
		if subject.TeacherID != actor.ID {
			return nil, NewPermissionError(actor.ID, subjectID, "subject", "view_attendance", "not assigned to this subject")
		}
	}

	return s.repo.Attendance().OverviewBySubject(ctx, subjectID)
}

func (s *attendanceService) StudentStats(ctx context.Context, actor models.Identity, studentID uint, subjectID *uint) (repositories.AttendanceStats, error) {
	if actor.Role == models.RoleStudent && actor.ID != studentID {
		return repositories.AttendanceStats{}, NewPermissionError(actor.ID, studentID, "attendance", "view_stats", "students may only view their own attendance")
	}
	return s.repo.Attendance().StatsByStudent(ctx, studentID, subjectID)
}

func (s *attendanceService) StudentHistory(ctx context.Context, actor models.Identity, filters repositories.AttendanceFilters) ([]*models.Attendance, error) {
	if err := requireStudent(actor, "attendance", "history"); err != nil {
		return nil, err
	}
	return s.repo.Attendance().ListByStudent(ctx, actor.ID, filters)
}
