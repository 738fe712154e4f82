package models

import "time"

// Result is the materialized, authoritative per-(student, subject, semester)
// performance record. It is written independently of live submission marks and
// read by dashboards as ground truth; do not derive it from submissions.
type Result struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"uniqueIndex:idx_result_student_subject_semester;not null"`
	SubjectID uint `json:"subject_id" gorm:"uniqueIndex:idx_result_student_subject_semester;not null"`
	Semester  int  `json:"semester" gorm:"uniqueIndex:idx_result_student_subject_semester;not null"`

	AssignmentMarks      float64 `json:"assignment_marks" gorm:"default:0"`
	ProjectMarks         float64 `json:"project_marks" gorm:"default:0"`
	AttendancePercentage float64 `json:"attendance_percentage" gorm:"default:0"`
	ExamMarks            float64 `json:"exam_marks" gorm:"default:0"`
	TotalMarks           float64 `json:"total_marks" gorm:"default:0"`
	Grade                string  `json:"grade" gorm:"size:2"`

	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`

	CreatedAt time.Time `json:"created_at"`
}

func (Result) TableName() string {
	return "results"
}
