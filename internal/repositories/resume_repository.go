package repositories

import (
	"context"

	"github.com/acadboost/academic-service/internal/models"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	GetByID(ctx context.Context, id uint) (*models.Resume, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Resume, error)

	// UpdateAnalysis stores the adapter's free-text output plus the two
	// placeholder scores and stamps analyzed_at.
	UpdateAnalysis(ctx context.Context, id uint, analysis string, analysisScore, atsScore float64) error

	Delete(ctx context.Context, id uint) error
}
