package repositories

import (
	"context"

	"github.com/acadboost/academic-service/internal/models"
)

type ResultRepository interface {
	// Upsert inserts or replaces the row keyed by
	// (student, subject, semester).
	Upsert(ctx context.Context, result *models.Result) error

	ListByStudent(ctx context.Context, studentID uint) ([]*models.Result, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]*models.Result, error)

	// AveragesByStudent returns the student's average attendance percentage and
	// average total marks across all result rows; both 0 when no rows exist.
	AveragesByStudent(ctx context.Context, studentID uint) (avgAttendance, avgMarks float64, err error)

	// MarksByStudent returns total marks of all result rows, for GPA input.
	MarksByStudent(ctx context.Context, studentID uint) ([]float64, error)
}

type CertificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error

	GetByID(ctx context.Context, id uint) (*models.Certificate, error)
	GetByCode(ctx context.Context, code string) (*models.Certificate, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Certificate, error)
	List(ctx context.Context, limit, offset int) ([]*models.Certificate, int64, error)

	CountByStudent(ctx context.Context, studentID uint) (int64, error)
}
