package models

import "time"

type Assignment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"type:text"`
	SubjectID   uint      `json:"subject_id" gorm:"index;not null"`
	TeacherID   uint      `json:"teacher_id" gorm:"index;not null"`
	DueDate     time.Time `json:"due_date" gorm:"type:date"`
	MaxMarks    int       `json:"max_marks" gorm:"default:100"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher *User    `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentSubmission is unique per (assignment, student). Resubmission
// overwrites the row and clears any prior grade.
type AssignmentSubmission struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	AssignmentID   uint   `json:"assignment_id" gorm:"uniqueIndex:idx_submission_assignment_student;not null"`
	StudentID      uint   `json:"student_id" gorm:"uniqueIndex:idx_submission_assignment_student;not null"`
	SubmissionText string `json:"submission_text" gorm:"type:text"`
	FileName       string `json:"file_name" gorm:"size:255"`
	FilePath       string `json:"file_path" gorm:"size:500"`

	SubmittedAt   time.Time  `json:"submitted_at"`
	MarksObtained *int       `json:"marks_obtained"`
	Feedback      *string    `json:"feedback" gorm:"type:text"`
	GradedBy      *uint      `json:"graded_by"`
	GradedAt      *time.Time `json:"graded_at"`

	Assignment *Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID"`
	Student    *User       `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}

// IsGraded reports whether marks have been recorded for this submission.
func (s *AssignmentSubmission) IsGraded() bool {
	return s.MarksObtained != nil
}
