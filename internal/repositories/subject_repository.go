package repositories

import (
	"context"

	"github.com/acadboost/academic-service/internal/models"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (*models.Subject, error)

	List(ctx context.Context, filters SubjectFilters) ([]*models.Subject, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Subject, error)

	Count(ctx context.Context) (int64, error)
	CountByTeacher(ctx context.Context, teacherID uint) (int64, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error

	IsEnrolled(ctx context.Context, studentID, subjectID uint) (bool, error)

	// IsEnrolledWithTeacher reports whether the student sits in any subject
	// taught by the given teacher.
	IsEnrolledWithTeacher(ctx context.Context, studentID, teacherID uint) (bool, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]*models.Enrollment, error)

	CountByStudent(ctx context.Context, studentID uint) (int64, error)

	// CountDistinctStudentsByTeacher counts distinct students enrolled across
	// all subjects taught by the given teacher.
	CountDistinctStudentsByTeacher(ctx context.Context, teacherID uint) (int64, error)
}
