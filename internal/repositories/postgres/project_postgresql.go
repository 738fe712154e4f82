package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type projectPostgres struct {
	db *gorm.DB
}

func NewProjectPostgres(db *gorm.DB) repositories.ProjectRepository {
	return &projectPostgres{db: db}
}

func (r *projectPostgres) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return translateError(err, "project")
	}
	return nil
}

func (r *projectPostgres) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return translateError(err, "project")
	}
	return nil
}

func (r *projectPostgres) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		First(&project, id).Error; err != nil {
		return nil, translateError(err, "project")
	}
	return &project, nil
}

func (r *projectPostgres) ListByTeacher(ctx context.Context, teacherID uint, activeOnly bool) ([]*models.Project, error) {
	query := r.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_id = ?", teacherID)
	if activeOnly {
		query = query.Where("status = ?", models.ProjectActive)
	}

	var projects []*models.Project
	if err := query.Order("end_date DESC").Find(&projects).Error; err != nil {
		return nil, translateError(err, "project")
	}
	return projects, nil
}

func (r *projectPostgres) ListForStudent(ctx context.Context, studentID uint) ([]*models.Project, error) {
	var projects []*models.Project
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Joins("JOIN enrollments ON enrollments.subject_id = projects.subject_id").
		Where("enrollments.student_id = ? AND projects.status = ?", studentID, models.ProjectActive).
		Order("projects.end_date").
		Find(&projects).Error; err != nil {
		return nil, translateError(err, "project")
	}
	return projects, nil
}

func (r *projectPostgres) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("status = ?", models.ProjectActive).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "project")
	}
	return count, nil
}

func (r *projectPostgres) CountActiveByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.ProjectActive).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "project")
	}
	return count, nil
}

// ===== SUBMISSIONS =====

type projectSubmissionPostgres struct {
	db *gorm.DB
}

func NewProjectSubmissionPostgres(db *gorm.DB) repositories.ProjectSubmissionRepository {
	return &projectSubmissionPostgres{db: db}
}

func (r *projectSubmissionPostgres) Upsert(ctx context.Context, submission *models.ProjectSubmission) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "student_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"title":          submission.Title,
				"description":    submission.Description,
				"file_name":      submission.FileName,
				"file_path":      submission.FilePath,
				"github_url":     submission.GithubURL,
				"submitted_at":   submission.SubmittedAt,
				"marks_obtained": nil,
				"feedback":       nil,
				"graded_by":      nil,
				"graded_at":      nil,
			}),
		}).
		Create(submission).Error
	if err != nil {
		return translateError(err, "project submission")
	}
	return nil
}

func (r *projectSubmissionPostgres) GetByID(ctx context.Context, id uint) (*models.ProjectSubmission, error) {
	var submission models.ProjectSubmission
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Student").
		First(&submission, id).Error; err != nil {
		return nil, translateError(err, "project submission")
	}
	return &submission, nil
}

func (r *projectSubmissionPostgres) GetByProjectAndStudent(ctx context.Context, projectID, studentID uint) (*models.ProjectSubmission, error) {
	var submission models.ProjectSubmission
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND student_id = ?", projectID, studentID).
		First(&submission).Error; err != nil {
		return nil, translateError(err, "project submission")
	}
	return &submission, nil
}

func (r *projectSubmissionPostgres) ListByProject(ctx context.Context, projectID uint) ([]*models.ProjectSubmission, error) {
	var submissions []*models.ProjectSubmission
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("project_id = ?", projectID).
		Order("submitted_at").
		Find(&submissions).Error; err != nil {
		return nil, translateError(err, "project submission")
	}
	return submissions, nil
}

func (r *projectSubmissionPostgres) ListByStudent(ctx context.Context, studentID uint) ([]*models.ProjectSubmission, error) {
	var submissions []*models.ProjectSubmission
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Project.Subject").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, translateError(err, "project submission")
	}
	return submissions, nil
}

func (r *projectSubmissionPostgres) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProjectSubmission{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "project submission")
	}
	return count, nil
}

func (r *projectSubmissionPostgres) CountPendingByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProjectSubmission{}).
		Joins("JOIN projects ON projects.id = project_submissions.project_id").
		Where("projects.teacher_id = ? AND project_submissions.marks_obtained IS NULL", teacherID).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "project submission")
	}
	return count, nil
}

func (r *projectSubmissionPostgres) UpdateGrade(ctx context.Context, id uint, marks int, feedback *string, gradedBy uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProjectSubmission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"marks_obtained": marks,
			"feedback":       feedback,
			"graded_by":      gradedBy,
			"graded_at":      time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error, "project submission")
	}
	if result.RowsAffected == 0 {
		return repositories.NotFound("project submission")
	}
	return nil
}
