package repositories

import (
	"context"

	"github.com/acadboost/academic-service/internal/models"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)

	ListByTeacher(ctx context.Context, teacherID uint, activeOnly bool) ([]*models.Assignment, error)

	// ListForStudent returns active assignments in the student's enrolled
	// subjects.
	ListForStudent(ctx context.Context, studentID uint) ([]*models.Assignment, error)

	CountActive(ctx context.Context) (int64, error)
	CountActiveByTeacher(ctx context.Context, teacherID uint) (int64, error)
}

type AssignmentSubmissionRepository interface {
	// Upsert inserts or replaces the row keyed by (assignment, student),
	// clearing marks, feedback, grader and graded-at on resubmission.
	Upsert(ctx context.Context, submission *models.AssignmentSubmission) error

	GetByID(ctx context.Context, id uint) (*models.AssignmentSubmission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*models.AssignmentSubmission, error)

	ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.AssignmentSubmission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.AssignmentSubmission, error)

	CountByStudent(ctx context.Context, studentID uint) (int64, error)

	// CountPendingByTeacher counts ungraded submissions under the teacher's
	// assignments.
	CountPendingByTeacher(ctx context.Context, teacherID uint) (int64, error)

	UpdateGrade(ctx context.Context, id uint, marks int, feedback *string, gradedBy uint) error
}
