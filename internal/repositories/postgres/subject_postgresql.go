package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type subjectPostgres struct {
	db *gorm.DB
}

func NewSubjectPostgres(db *gorm.DB) repositories.SubjectRepository {
	return &subjectPostgres{db: db}
}

func (r *subjectPostgres) Create(ctx context.Context, subject *models.Subject) error {
	if err := r.db.WithContext(ctx).Create(subject).Error; err != nil {
		return translateError(err, "subject")
	}
	return nil
}

func (r *subjectPostgres) Update(ctx context.Context, subject *models.Subject) error {
	if err := r.db.WithContext(ctx).Save(subject).Error; err != nil {
		return translateError(err, "subject")
	}
	return nil
}

func (r *subjectPostgres) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Teacher").
		First(&subject, id).Error; err != nil {
		return nil, translateError(err, "subject")
	}
	return &subject, nil
}

func (r *subjectPostgres) List(ctx context.Context, filters repositories.SubjectFilters) ([]*models.Subject, error) {
	query := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Teacher")

	if filters.DepartmentID != nil {
		query = query.Where("department_id = ?", *filters.DepartmentID)
	}
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}
	if filters.Semester != nil {
		query = query.Where("semester = ?", *filters.Semester)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var subjects []*models.Subject
	if err := query.Order("code").Find(&subjects).Error; err != nil {
		return nil, translateError(err, "subject")
	}
	return subjects, nil
}

func (r *subjectPostgres) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Subject, error) {
	var subjects []*models.Subject
	if err := r.db.WithContext(ctx).
		Preload("Department").
		Where("teacher_id = ?", teacherID).
		Order("code").
		Find(&subjects).Error; err != nil {
		return nil, translateError(err, "subject")
	}
	return subjects, nil
}

func (r *subjectPostgres) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Subject{}).Count(&count).Error; err != nil {
		return 0, translateError(err, "subject")
	}
	return count, nil
}

func (r *subjectPostgres) CountByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("teacher_id = ?", teacherID).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "subject")
	}
	return count, nil
}

// ===== ENROLLMENTS =====

type enrollmentPostgres struct {
	db *gorm.DB
}

func NewEnrollmentPostgres(db *gorm.DB) repositories.EnrollmentRepository {
	return &enrollmentPostgres{db: db}
}

func (r *enrollmentPostgres) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return translateError(err, "enrollment")
	}
	return nil
}

func (r *enrollmentPostgres) IsEnrolled(ctx context.Context, studentID, subjectID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ? AND subject_id = ? AND status = ?", studentID, subjectID, models.EnrollmentActive).
		Count(&count).Error; err != nil {
		return false, translateError(err, "enrollment")
	}
	return count > 0, nil
}

func (r *enrollmentPostgres) IsEnrolledWithTeacher(ctx context.Context, studentID, teacherID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Joins("JOIN subjects ON subjects.id = enrollments.subject_id").
		Where("enrollments.student_id = ? AND enrollments.status = ? AND subjects.teacher_id = ?",
			studentID, models.EnrollmentActive, teacherID).
		Count(&count).Error; err != nil {
		return false, translateError(err, "enrollment")
	}
	return count > 0, nil
}

func (r *enrollmentPostgres) ListByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Subject.Teacher").
		Where("student_id = ?", studentID).
		Find(&enrollments).Error; err != nil {
		return nil, translateError(err, "enrollment")
	}
	return enrollments, nil
}

func (r *enrollmentPostgres) ListBySubject(ctx context.Context, subjectID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("subject_id = ?", subjectID).
		Find(&enrollments).Error; err != nil {
		return nil, translateError(err, "enrollment")
	}
	return enrollments, nil
}

func (r *enrollmentPostgres) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "enrollment")
	}
	return count, nil
}

func (r *enrollmentPostgres) CountDistinctStudentsByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Joins("JOIN subjects ON subjects.id = enrollments.subject_id").
		Where("subjects.teacher_id = ?", teacherID).
		Distinct("enrollments.student_id").
		Count(&count).Error; err != nil {
		return 0, translateError(err, "enrollment")
	}
	return count, nil
}
