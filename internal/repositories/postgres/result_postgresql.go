package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type resultPostgres struct {
	db *gorm.DB
}

func NewResultPostgres(db *gorm.DB) repositories.ResultRepository {
	return &resultPostgres{db: db}
}

func (r *resultPostgres) Upsert(ctx context.Context, result *models.Result) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "subject_id"}, {Name: "semester"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"assignment_marks", "project_marks", "attendance_percentage",
				"exam_marks", "total_marks", "grade",
			}),
		}).
		Create(result).Error; err != nil {
		return translateError(err, "result")
	}
	return nil
}

func (r *resultPostgres) ListByStudent(ctx context.Context, studentID uint) ([]*models.Result, error) {
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Order("semester, subject_id").
		Find(&results).Error; err != nil {
		return nil, translateError(err, "result")
	}
	return results, nil
}

func (r *resultPostgres) ListBySubject(ctx context.Context, subjectID uint) ([]*models.Result, error) {
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("subject_id = ?", subjectID).
		Find(&results).Error; err != nil {
		return nil, translateError(err, "result")
	}
	return results, nil
}

func (r *resultPostgres) AveragesByStudent(ctx context.Context, studentID uint) (float64, float64, error) {
	var row struct {
		AvgAttendance float64
		AvgMarks      float64
	}
	// COALESCE keeps a student with zero result rows at 0, never NULL.
	if err := r.db.WithContext(ctx).
		Model(&models.Result{}).
		Select("COALESCE(AVG(attendance_percentage), 0) as avg_attendance, COALESCE(AVG(total_marks), 0) as avg_marks").
		Where("student_id = ?", studentID).
		Scan(&row).Error; err != nil {
		return 0, 0, translateError(err, "result")
	}
	return row.AvgAttendance, row.AvgMarks, nil
}

func (r *resultPostgres) MarksByStudent(ctx context.Context, studentID uint) ([]float64, error) {
	var marks []float64
	if err := r.db.WithContext(ctx).
		Model(&models.Result{}).
		Where("student_id = ?", studentID).
		Pluck("total_marks", &marks).Error; err != nil {
		return nil, translateError(err, "result")
	}
	return marks, nil
}

// ===== CERTIFICATES =====

type certificatePostgres struct {
	db *gorm.DB
}

func NewCertificatePostgres(db *gorm.DB) repositories.CertificateRepository {
	return &certificatePostgres{db: db}
}

func (r *certificatePostgres) Create(ctx context.Context, cert *models.Certificate) error {
	if err := r.db.WithContext(ctx).Create(cert).Error; err != nil {
		return translateError(err, "certificate")
	}
	return nil
}

func (r *certificatePostgres) GetByID(ctx context.Context, id uint) (*models.Certificate, error) {
	var cert models.Certificate
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Issuer").
		First(&cert, id).Error; err != nil {
		return nil, translateError(err, "certificate")
	}
	return &cert, nil
}

func (r *certificatePostgres) GetByCode(ctx context.Context, code string) (*models.Certificate, error) {
	var cert models.Certificate
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Issuer").
		Where("certificate_code = ?", code).
		First(&cert).Error; err != nil {
		return nil, translateError(err, "certificate")
	}
	return &cert, nil
}

func (r *certificatePostgres) ListByStudent(ctx context.Context, studentID uint) ([]*models.Certificate, error) {
	var certs []*models.Certificate
	if err := r.db.WithContext(ctx).
		Preload("Issuer").
		Where("student_id = ?", studentID).
		Order("issue_date DESC").
		Find(&certs).Error; err != nil {
		return nil, translateError(err, "certificate")
	}
	return certs, nil
}

func (r *certificatePostgres) List(ctx context.Context, limit, offset int) ([]*models.Certificate, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Certificate{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "certificate")
	}

	query := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Issuer").
		Order("issue_date DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var certs []*models.Certificate
	if err := query.Find(&certs).Error; err != nil {
		return nil, 0, translateError(err, "certificate")
	}
	return certs, total, nil
}

func (r *certificatePostgres) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Certificate{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "certificate")
	}
	return count, nil
}
