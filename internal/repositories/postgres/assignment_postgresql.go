package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type assignmentPostgres struct {
	db *gorm.DB
}

func NewAssignmentPostgres(db *gorm.DB) repositories.AssignmentRepository {
	return &assignmentPostgres{db: db}
}

func (r *assignmentPostgres) Create(ctx context.Context, assignment *models.Assignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return translateError(err, "assignment")
	}
	return nil
}

func (r *assignmentPostgres) Update(ctx context.Context, assignment *models.Assignment) error {
	if err := r.db.WithContext(ctx).Save(assignment).Error; err != nil {
		return translateError(err, "assignment")
	}
	return nil
}

func (r *assignmentPostgres) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		First(&assignment, id).Error; err != nil {
		return nil, translateError(err, "assignment")
	}
	return &assignment, nil
}

func (r *assignmentPostgres) ListByTeacher(ctx context.Context, teacherID uint, activeOnly bool) ([]*models.Assignment, error) {
	query := r.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_id = ?", teacherID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var assignments []*models.Assignment
	if err := query.Order("due_date DESC").Find(&assignments).Error; err != nil {
		return nil, translateError(err, "assignment")
	}
	return assignments, nil
}

func (r *assignmentPostgres) ListForStudent(ctx context.Context, studentID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Joins("JOIN enrollments ON enrollments.subject_id = assignments.subject_id").
		Where("enrollments.student_id = ? AND assignments.is_active = ?", studentID, true).
		Order("assignments.due_date").
		Find(&assignments).Error; err != nil {
		return nil, translateError(err, "assignment")
	}
	return assignments, nil
}

func (r *assignmentPostgres) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "assignment")
	}
	return count, nil
}

func (r *assignmentPostgres) CountActiveByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("teacher_id = ? AND is_active = ?", teacherID, true).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "assignment")
	}
	return count, nil
}

// ===== SUBMISSIONS =====

type assignmentSubmissionPostgres struct {
	db *gorm.DB
}

func NewAssignmentSubmissionPostgres(db *gorm.DB) repositories.AssignmentSubmissionRepository {
	return &assignmentSubmissionPostgres{db: db}
}

func (r *assignmentSubmissionPostgres) Upsert(ctx context.Context, submission *models.AssignmentSubmission) error {
	// Resubmission replaces the row and discards any prior grade.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "assignment_id"}, {Name: "student_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"submission_text": submission.SubmissionText,
				"file_name":       submission.FileName,
				"file_path":       submission.FilePath,
				"submitted_at":    submission.SubmittedAt,
				"marks_obtained":  nil,
				"feedback":        nil,
				"graded_by":       nil,
				"graded_at":       nil,
			}),
		}).
		Create(submission).Error
	if err != nil {
		return translateError(err, "assignment submission")
	}
	return nil
}

func (r *assignmentSubmissionPostgres) GetByID(ctx context.Context, id uint) (*models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	if err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		First(&submission, id).Error; err != nil {
		return nil, translateError(err, "assignment submission")
	}
	return &submission, nil
}

func (r *assignmentSubmissionPostgres) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (*models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error; err != nil {
		return nil, translateError(err, "assignment submission")
	}
	return &submission, nil
}

func (r *assignmentSubmissionPostgres) ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.AssignmentSubmission, error) {
	var submissions []*models.AssignmentSubmission
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at").
		Find(&submissions).Error; err != nil {
		return nil, translateError(err, "assignment submission")
	}
	return submissions, nil
}

func (r *assignmentSubmissionPostgres) ListByStudent(ctx context.Context, studentID uint) ([]*models.AssignmentSubmission, error) {
	var submissions []*models.AssignmentSubmission
	if err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Assignment.Subject").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, translateError(err, "assignment submission")
	}
	return submissions, nil
}

func (r *assignmentSubmissionPostgres) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AssignmentSubmission{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "assignment submission")
	}
	return count, nil
}

func (r *assignmentSubmissionPostgres) CountPendingByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AssignmentSubmission{}).
		Joins("JOIN assignments ON assignments.id = assignment_submissions.assignment_id").
		Where("assignments.teacher_id = ? AND assignment_submissions.marks_obtained IS NULL", teacherID).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "assignment submission")
	}
	return count, nil
}

func (r *assignmentSubmissionPostgres) UpdateGrade(ctx context.Context, id uint, marks int, feedback *string, gradedBy uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.AssignmentSubmission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"marks_obtained": marks,
			"feedback":       feedback,
			"graded_by":      gradedBy,
			"graded_at":      time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error, "assignment submission")
	}
	if result.RowsAffected == 0 {
		return repositories.NotFound("assignment submission")
	}
	return nil
}
