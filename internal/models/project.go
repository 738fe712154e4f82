package models

import "time"

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectInactive ProjectStatus = "inactive"
)

type Project struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Title       string        `json:"title" gorm:"not null;size:200"`
	Description string        `json:"description" gorm:"type:text"`
	SubjectID   uint          `json:"subject_id" gorm:"index;not null"`
	TeacherID   uint          `json:"teacher_id" gorm:"index;not null"`
	StartDate   time.Time     `json:"start_date" gorm:"type:date"`
	EndDate     time.Time     `json:"end_date" gorm:"type:date"`
	MaxMarks    int           `json:"max_marks" gorm:"default:100"`
	Status      ProjectStatus `json:"status" gorm:"default:active;size:20"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher *User    `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectSubmission is unique per (project, student); same overwrite contract
// as assignment submissions, plus a repository URL.
type ProjectSubmission struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ProjectID   uint   `json:"project_id" gorm:"uniqueIndex:idx_submission_project_student;not null"`
	StudentID   uint   `json:"student_id" gorm:"uniqueIndex:idx_submission_project_student;not null"`
	Title       string `json:"title" gorm:"size:200"`
	Description string `json:"description" gorm:"type:text"`
	FileName    string `json:"file_name" gorm:"size:255"`
	FilePath    string `json:"file_path" gorm:"size:500"`
	GithubURL   string `json:"github_url" gorm:"size:500"`

	SubmittedAt   time.Time  `json:"submitted_at"`
	MarksObtained *int       `json:"marks_obtained"`
	Feedback      *string    `json:"feedback" gorm:"type:text"`
	GradedBy      *uint      `json:"graded_by"`
	GradedAt      *time.Time `json:"graded_at"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (ProjectSubmission) TableName() string {
	return "project_submissions"
}

func (s *ProjectSubmission) IsGraded() bool {
	return s.MarksObtained != nil
}
