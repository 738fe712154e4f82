package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gorm.io/datatypes"

	"github.com/acadboost/academic-service/internal/ai"
	"github.com/acadboost/academic-service/internal/documents"
	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/storage"
	"github.com/acadboost/academic-service/internal/validator"
)

// Placeholder scores stored alongside the advisory text. They are fixed
// values, never extracted from the generated output.
const (
	placeholderAnalysisScore = 7.5 // 0-10
	placeholderATSScore      = 75  // 0-100
)

type resumeService struct {
	repo      repositories.Repository
	files     *storage.Store
	gen       ai.TextGenerator
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewResumeService(repo repositories.Repository, files *storage.Store, gen ai.TextGenerator, logger *slog.Logger, v *validator.BusinessValidator) ResumeService {
	return &resumeService{
		repo:      repo,
		files:     files,
		gen:       gen,
		logger:    logger,
		validator: v,
	}
}

func (s *resumeService) Build(ctx context.Context, actor models.Identity, req *BuildResumeRequest) (*models.Resume, error) {
	if err := requireStudent(actor, "resume", "build"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	data, err := json.Marshal(req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume content: %w", err)
	}

	resume := &models.Resume{
		StudentID: actor.ID,
		Title:     req.Title,
		Type:      models.ResumeGenerated,
		Data:      datatypes.JSON(data),
	}
	if err := s.repo.Resume().Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	s.logger.Info("Resume built", "resume_id", resume.ID, "student_id", actor.ID)
	return resume, nil
}

func (s *resumeService) Upload(ctx context.Context, actor models.Identity, title, fileName string, size int64, data []byte) (*models.Resume, error) {
	if err := requireStudent(actor, "resume", "upload"); err != nil {
		return nil, err
	}
	if title == "" {
		title = fileName
	}

	path, err := s.files.Save("resumes", fileName, size, bytes.NewReader(data))
	if err != nil {
		return nil, NewValidationError("file", err.Error(), fileName)
	}

	resume := &models.Resume{
		StudentID: actor.ID,
		Title:     title,
		Type:      models.ResumeUploaded,
		FilePath:  path,
	}
	if err := s.repo.Resume().Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	s.logger.Info("Resume uploaded", "resume_id", resume.ID, "student_id", actor.ID)
	return resume, nil
}

func (s *resumeService) Analyze(ctx context.Context, actor models.Identity, resumeID uint) (*models.Resume, error) {
	resume, err := s.getOwned(ctx, actor, resumeID, "analyze")
	if err != nil {
		return nil, err
	}

	text, err := s.resumeText(resume)
	if err != nil {
		return nil, err
	}

	analysis, err := s.gen.GenerateText(ctx, ai.ResumePrompt(text))
	if err != nil {
		s.logger.Warn("Resume analysis failed, storing fallback", "error", err, "resume_id", resumeID)
		analysis = ai.FallbackMessage
	}

	if err := s.repo.Resume().UpdateAnalysis(ctx, resumeID, analysis, placeholderAnalysisScore, placeholderATSScore); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	return s.repo.Resume().GetByID(ctx, resumeID)
}

func (s *resumeService) List(ctx context.Context, actor models.Identity) ([]*models.Resume, error) {
	if err := requireStudent(actor, "resume", "list"); err != nil {
		return nil, err
	}
	return s.repo.Resume().ListByStudent(ctx, actor.ID)
}

func (s *resumeService) Delete(ctx context.Context, actor models.Identity, resumeID uint) error {
	resume, err := s.getOwned(ctx, actor, resumeID, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.Resume().Delete(ctx, resumeID); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if resume.FilePath != "" {
		if err := s.files.Remove(resume.FilePath); err != nil {
			s.logger.Warn("Failed to remove resume file", "error", err, "path", resume.FilePath)
		}
	}
	return nil
}

func (s *resumeService) RenderPDF(ctx context.Context, actor models.Identity, resumeID uint) ([]byte, string, error) {
	resume, err := s.getOwned(ctx, actor, resumeID, "download")
	if err != nil {
		return nil, "", err
	}

	switch resume.Type {
	case models.ResumeGenerated:
		var content models.ResumeContent
		if err := json.Unmarshal(resume.Data, &content); err != nil {
			return nil, "", fmt.Errorf("failed to decode resume content: %w", err)
		}
		pdf, err := documents.RenderResume(resume.Title, content)
		if err != nil {
			return nil, "", err
		}
		return pdf, fmt.Sprintf("resume_%d.pdf", resume.ID), nil

	case models.ResumeUploaded:
		f, err := s.files.Open(resume.FilePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open resume file: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read resume file: %w", err)
		}
		return data, resume.Title, nil

	default:
		return nil, "", fmt.Errorf("unknown resume type %q", resume.Type)
	}
}

func (s *resumeService) getOwned(ctx context.Context, actor models.Identity, resumeID uint, action string) (*models.Resume, error) {
	if err := requireStudent(actor, "resume", action); err != nil {
		return nil, err
	}

	resume, err := s.repo.Resume().GetByID(ctx, resumeID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if resume.StudentID != actor.ID {
		return nil, NewPermissionError(actor.ID, resumeID, "resume", action, "not owned by student")
	}
	return resume, nil
}

// resumeText flattens resume content into prompt text for the adapter.
func (s *resumeService) resumeText(resume *models.Resume) (string, error) {
	if resume.Type == models.ResumeUploaded {
		// Uploaded binaries are not parsed; the adapter reviews the metadata.
		return fmt.Sprintf("Uploaded resume file: %s", resume.Title), nil
	}

	var content models.ResumeContent
	if err := json.Unmarshal(resume.Data, &content); err != nil {
		return "", fmt.Errorf("failed to decode resume content: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", content.PersonalInfo.FullName)
	fmt.Fprintf(&b, "Email: %s\n", content.PersonalInfo.Email)
	if content.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", content.Summary)
	}
	if len(content.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(content.Skills, ", "))
	}
	for _, edu := range content.Education {
		fmt.Fprintf(&b, "Education: %s, %s (%s)\n", edu.Degree, edu.Institution, edu.Year)
	}
	for _, exp := range content.Experience {
		fmt.Fprintf(&b, "Experience: %s at %s (%s): %s\n", exp.Title, exp.Company, exp.Duration, exp.Description)
	}
	for _, proj := range content.Projects {
		fmt.Fprintf(&b, "Project: %s (%s): %s\n", proj.Name, proj.Technology, proj.Description)
	}
	return b.String(), nil
}
