package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// Attendance is unique per (student, subject, date). Re-marking the same day
// overwrites the prior status (teacher correcting a mistake).
type Attendance struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID uint             `json:"student_id" gorm:"uniqueIndex:idx_attendance_student_subject_date;not null"`
	SubjectID uint             `json:"subject_id" gorm:"uniqueIndex:idx_attendance_student_subject_date;not null"`
	Date      time.Time        `json:"date" gorm:"uniqueIndex:idx_attendance_student_subject_date;not null;type:date"`
	Status    AttendanceStatus `json:"status" gorm:"not null;size:10"`
	MarkedBy  uint             `json:"marked_by"`

	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}
