package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/acadboost/academic-service/internal/documents"
	"github.com/acadboost/academic-service/internal/events"
	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/validator"
)

type certificateService struct {
	repo       repositories.Repository
	notifier   NotificationService
	publisher  events.EventPublisher
	logger     *slog.Logger
	validator  *validator.BusinessValidator
	autoVerify bool
}

func NewCertificateService(repo repositories.Repository, notifier NotificationService, publisher events.EventPublisher, logger *slog.Logger, v *validator.BusinessValidator, autoVerify bool) CertificateService {
	return &certificateService{
		repo:       repo,
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger,
		validator:  v,
		autoVerify: autoVerify,
	}
}

// CertificateCode builds the shareable verification code:
// ACAD-<issue date as YYYYMMDD>-<student id, zero-padded to 4 digits>.
func CertificateCode(issueDate time.Time, studentID uint) string {
	return fmt.Sprintf("ACAD-%s-%04d", issueDate.Format("20060102"), studentID)
}

func (s *certificateService) Issue(ctx context.Context, actor models.Identity, req *IssueCertificateRequest) (*models.Certificate, error) {
	if err := requireStaff(actor, "certificate", "issue"); err != nil {
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
	if student.Role != models.RoleStudent {
		return nil, NewValidationError("student_id", "user is not a student", req.StudentID)
	}

	issueDate := time.Now()
	cert := &models.Certificate{
		StudentID:   req.StudentID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		IssueDate:   issueDate,
		Code:        CertificateCode(issueDate, req.StudentID),
		IssuedBy:    actor.ID,
		IsVerified:  s.autoVerify,
	}

	if err := s.repo.Certificate().Create(ctx, cert); err != nil {
		if repositories.IsDuplicateError(err) {
			// One certificate per student per day under this code scheme.
			return nil, NewValidationError("student_id", "a certificate was already issued to this student today", req.StudentID)
		}
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	if err := s.notifier.Notify(ctx, req.StudentID,
		"Certificate issued",
		fmt.Sprintf("You received a certificate: %s (code %s)", req.Title, cert.Code),
		models.NotificationSuccess); err != nil {
		s.logger.Warn("Failed to notify student of certificate", "error", err, "certificate_id", cert.ID)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.Event{
			Type: events.EventCertificateIssued,
			Data: map[string]interface{}{
				"certificate_id": cert.ID,
				"student_id":     req.StudentID,
				"code":           cert.Code,
				"issued_by":      actor.ID,
			},
		}); err != nil {
			s.logger.Warn("Failed to publish event", "error", err, "type", events.EventCertificateIssued)
		}
	}

	s.logger.Info("Certificate issued", "certificate_id", cert.ID, "code", cert.Code, "issued_by", actor.ID)
	return cert, nil
}

func (s *certificateService) Verify(ctx context.Context, code string) (*CertificateVerification, error) {
	cert, err := s.repo.Certificate().GetByCode(ctx, code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return &CertificateVerification{Status: VerificationNotFound}, nil
		}
		return nil, fmt.Errorf("failed to look up certificate: %w", err)
	}

	status := VerificationValid
	if !cert.IsVerified {
		status = VerificationUnverified
	}
	return &CertificateVerification{Status: status, Certificate: cert}, nil
}

func (s *certificateService) ListByStudent(ctx context.Context, actor models.Identity, studentID uint) ([]*models.Certificate, error) {
	if actor.Role == models.RoleStudent && actor.ID != studentID {
		return nil, NewPermissionError(actor.ID, studentID, "certificate", "list", "students may only view their own certificates")
	}
	return s.repo.Certificate().ListByStudent(ctx, studentID)
}

func (s *certificateService) List(ctx context.Context, actor models.Identity, limit, offset int) ([]*models.Certificate, int64, error) {
	if err := requireStaff(actor, "certificate", "list_all"); err != nil {
		return nil, 0, err
	}
	return s.repo.Certificate().List(ctx, limit, offset)
}

func (s *certificateService) RenderPDF(ctx context.Context, actor models.Identity, certificateID uint) ([]byte, string, error) {
	cert, err := s.repo.Certificate().GetByID(ctx, certificateID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to load certificate: %w", err)
	}

	if actor.Role == models.RoleStudent && cert.StudentID != actor.ID {
		return nil, "", NewPermissionError(actor.ID, certificateID, "certificate", "download", "students may only download their own certificates")
	}

	studentName := ""
	if cert.Student != nil {
		studentName = cert.Student.FullName
	} else {
		student, err := s.repo.User().GetByID(ctx, cert.StudentID)
		if err == nil {
			studentName = student.FullName
		}
	}

	pdf, err := documents.RenderCertificate(cert, studentName)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("certificate_%s.pdf", cert.Code), nil
}
