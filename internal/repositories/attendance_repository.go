package repositories

import (
	"context"
	"time"

	"github.com/acadboost/academic-service/internal/models"
)

type AttendanceRepository interface {
	// Upsert inserts or overwrites the row keyed by (student, subject, date).
	// Last write wins; re-marking a day replaces the prior status.
	Upsert(ctx context.Context, record *models.Attendance) error

	GetByKey(ctx context.Context, studentID, subjectID uint, date time.Time) (*models.Attendance, error)

	ListByStudent(ctx context.Context, studentID uint, filters AttendanceFilters) ([]*models.Attendance, error)
	ListBySubjectDate(ctx context.Context, subjectID uint, date time.Time) ([]*models.Attendance, error)

	// StatsByStudent aggregates status counts, optionally scoped to a subject.
	StatsByStudent(ctx context.Context, studentID uint, subjectID *uint) (AttendanceStats, error)

	// OverviewBySubject aggregates status counts per student across every
	// marked date of one subject.
	OverviewBySubject(ctx context.Context, subjectID uint) ([]*SubjectAttendanceRow, error)
}
