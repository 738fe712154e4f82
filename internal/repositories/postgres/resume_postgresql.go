package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type resumePostgres struct {
	db *gorm.DB
}

func NewResumePostgres(db *gorm.DB) repositories.ResumeRepository {
	return &resumePostgres{db: db}
}

func (r *resumePostgres) Create(ctx context.Context, resume *models.Resume) error {
	if err := r.db.WithContext(ctx).Create(resume).Error; err != nil {
		return translateError(err, "resume")
	}
	return nil
}

func (r *resumePostgres) GetByID(ctx context.Context, id uint) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.WithContext(ctx).First(&resume, id).Error; err != nil {
		return nil, translateError(err, "resume")
	}
	return &resume, nil
}

func (r *resumePostgres) ListByStudent(ctx context.Context, studentID uint) ([]*models.Resume, error) {
	var resumes []*models.Resume
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&resumes).Error; err != nil {
		return nil, translateError(err, "resume")
	}
	return resumes, nil
}

func (r *resumePostgres) UpdateAnalysis(ctx context.Context, id uint, analysis string, analysisScore, atsScore float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_analysis":    analysis,
			"analysis_score": analysisScore,
			"ats_score":      atsScore,
			"analyzed_at":    time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error, "resume")
	}
	if result.RowsAffected == 0 {
		return repositories.NotFound("resume")
	}
	return nil
}

func (r *resumePostgres) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Resume{}, id)
	if result.Error != nil {
		return translateError(result.Error, "resume")
	}
	if result.RowsAffected == 0 {
		return repositories.NotFound("resume")
	}
	return nil
}
