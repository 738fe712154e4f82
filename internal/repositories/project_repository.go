package repositories

import (
	"context"

	"github.com/acadboost/academic-service/internal/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)

	ListByTeacher(ctx context.Context, teacherID uint, activeOnly bool) ([]*models.Project, error)
	ListForStudent(ctx context.Context, studentID uint) ([]*models.Project, error)

	CountActive(ctx context.Context) (int64, error)
	CountActiveByTeacher(ctx context.Context, teacherID uint) (int64, error)
}

type ProjectSubmissionRepository interface {
	// Upsert follows the assignment-submission contract: one row per
	// (project, student), grade fields cleared on resubmission.
	Upsert(ctx context.Context, submission *models.ProjectSubmission) error

	GetByID(ctx context.Context, id uint) (*models.ProjectSubmission, error)
	GetByProjectAndStudent(ctx context.Context, projectID, studentID uint) (*models.ProjectSubmission, error)

	ListByProject(ctx context.Context, projectID uint) ([]*models.ProjectSubmission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.ProjectSubmission, error)

	CountByStudent(ctx context.Context, studentID uint) (int64, error)
	CountPendingByTeacher(ctx context.Context, teacherID uint) (int64, error)

	UpdateGrade(ctx context.Context, id uint, marks int, feedback *string, gradedBy uint) error
}
