package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type attendancePostgres struct {
	db *gorm.DB
}

func NewAttendancePostgres(db *gorm.DB) repositories.AttendanceRepository {
	return &attendancePostgres{db: db}
}

func (r *attendancePostgres) Upsert(ctx context.Context, record *models.Attendance) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_id"}, {Name: "subject_id"}, {Name: "date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "updated_at"}),
		}).
		Create(record).Error
	if err != nil {
		return translateError(err, "attendance")
	}
	return nil
}

func (r *attendancePostgres) GetByKey(ctx context.Context, studentID, subjectID uint, date time.Time) (*models.Attendance, error) {
	var record models.Attendance
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ? AND date = ?", studentID, subjectID, date.Format("2006-01-02")).
		First(&record).Error; err != nil {
		return nil, translateError(err, "attendance")
	}
	return &record, nil
}

func (r *attendancePostgres) ListByStudent(ctx context.Context, studentID uint, filters repositories.AttendanceFilters) ([]*models.Attendance, error) {
	query := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID)

	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", filters.DateFrom.Format("2006-01-02"))
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", filters.DateTo.Format("2006-01-02"))
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var records []*models.Attendance
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, translateError(err, "attendance")
	}
	return records, nil
}

func (r *attendancePostgres) ListBySubjectDate(ctx context.Context, subjectID uint, date time.Time) ([]*models.Attendance, error) {
	var records []*models.Attendance
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("subject_id = ? AND date = ?", subjectID, date.Format("2006-01-02")).
		Find(&records).Error; err != nil {
		return nil, translateError(err, "attendance")
	}
	return records, nil
}

func (r *attendancePostgres) OverviewBySubject(ctx context.Context, subjectID uint) ([]*repositories.SubjectAttendanceRow, error) {
	var rows []*repositories.SubjectAttendanceRow
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Select(`attendances.student_id,
			users.full_name AS student_name,
			COUNT(*) FILTER (WHERE attendances.status = 'present') AS present,
			COUNT(*) FILTER (WHERE attendances.status = 'absent') AS absent,
			COUNT(*) FILTER (WHERE attendances.status = 'late') AS late,
			COUNT(*) AS total`).
		Joins("JOIN users ON users.id = attendances.student_id").
		Where("attendances.subject_id = ?", subjectID).
		Group("attendances.student_id, users.full_name").
		Order("users.full_name").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "attendance")
	}
	return rows, nil
}

func (r *attendancePostgres) StatsByStudent(ctx context.Context, studentID uint, subjectID *uint) (repositories.AttendanceStats, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("student_id = ?", studentID)
	if subjectID != nil {
		query = query.Where("subject_id = ?", *subjectID)
	}

	var rows []struct {
		Status models.AttendanceStatus
		Count  int64
	}
	if err := query.
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return repositories.AttendanceStats{}, translateError(err, "attendance")
	}

	var stats repositories.AttendanceStats
	for _, row := range rows {
		switch row.Status {
		case models.AttendancePresent:
			stats.Present = row.Count
		case models.AttendanceAbsent:
			stats.Absent = row.Count
		case models.AttendanceLate:
			stats.Late = row.Count
		}
		stats.Total += row.Count
	}
	return stats, nil
}
