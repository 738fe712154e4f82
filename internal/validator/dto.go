package validator

import (
	"github.com/acadboost/academic-service/internal/models"
)

// Dates in request bodies travel as "2006-01-02" strings and are parsed at
// the service layer.

// LoginRequest represents the request structure for logging in
type LoginRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=50"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
}

// UserCreateRequest represents the request structure for creating users
type UserCreateRequest struct {
	Username   string          `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password   string          `json:"password" validate:"required,min=6,max=72"`
	Role       models.UserRole `json:"role" validate:"required,user_role"`
	FullName   string          `json:"full_name" validate:"required,min=2,max=100"`
	Email      string          `json:"email" validate:"required,email"`
	Department string          `json:"department" validate:"omitempty,max=100"`
}

// UserUpdateRequest represents the request structure for updating users
type UserUpdateRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Password   *string `json:"password" validate:"omitempty,min=6,max=72"`
	IsActive   *bool   `json:"is_active"`
}

// DepartmentCreateRequest represents the request structure for creating departments
type DepartmentCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Code        string `json:"code" validate:"required,min=2,max=10,uppercase"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	HeadID      *uint  `json:"head_id"`
}

// SubjectCreateRequest represents the request structure for creating subjects
type SubjectCreateRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Code         string `json:"code" validate:"required,min=2,max=20"`
	DepartmentID uint   `json:"department_id" validate:"required"`
	TeacherID    *uint  `json:"teacher_id"`
	Credits      int    `json:"credits" validate:"omitempty,subject_credits"`
	Semester     int    `json:"semester" validate:"required,semester"`
}

// SubjectUpdateRequest represents the request structure for updating subjects
type SubjectUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	TeacherID *uint   `json:"teacher_id"`
	Credits   *int    `json:"credits" validate:"omitempty,subject_credits"`
	Semester  *int    `json:"semester" validate:"omitempty,semester"`
}

// EnrollmentRequest represents enrolling a student into a subject
type EnrollmentRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	SubjectID uint `json:"subject_id" validate:"required"`
}

// AttendanceEntry is one student's status within a marking request
type AttendanceEntry struct {
	StudentID uint                    `json:"student_id" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,attendance_status"`
}

// AttendanceMarkRequest represents marking attendance for a subject on a date
type AttendanceMarkRequest struct {
	SubjectID uint              `json:"subject_id" validate:"required"`
	Date      string            `json:"date" validate:"required,datetime=2006-01-02"`
	Entries   []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// AssignmentCreateRequest represents the request structure for creating assignments
type AssignmentCreateRequest struct {
	SubjectID   uint   `json:"subject_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
	MaxMarks    int    `json:"max_marks" validate:"omitempty,max_marks"`
}

// AssignmentUpdateRequest represents the request structure for updating assignments
type AssignmentUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	MaxMarks    *int    `json:"max_marks" validate:"omitempty,max_marks"`
	IsActive    *bool   `json:"is_active"`
}

// AssignmentSubmitRequest represents a student submitting an assignment
type AssignmentSubmitRequest struct {
	Content  string `json:"content" validate:"omitempty,max=10000"`
	FilePath string `json:"file_path" validate:"omitempty,max=500"`
}

// GradeRequest represents a teacher grading a submission
type GradeRequest struct {
	Marks    int     `json:"marks" validate:"min=0"`
	Feedback *string `json:"feedback" validate:"omitempty,max=2000"`
}

// ProjectCreateRequest represents the request structure for creating projects
type ProjectCreateRequest struct {
	SubjectID   uint   `json:"subject_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	MaxMarks    int    `json:"max_marks" validate:"omitempty,max_marks"`
}

// ProjectUpdateRequest represents the request structure for updating projects
type ProjectUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	MaxMarks    *int    `json:"max_marks" validate:"omitempty,max_marks"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProjectSubmitRequest represents a student submitting a project
type ProjectSubmitRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	GithubURL   string `json:"github_url" validate:"omitempty,url,max=500"`
	FilePath    string `json:"file_path" validate:"omitempty,max=500"`
}

// AnnouncementCreateRequest represents publishing an announcement
type AnnouncementCreateRequest struct {
	Title        string           `json:"title" validate:"required,min=2,max=200"`
	Content      string           `json:"content" validate:"required,max=5000"`
	TargetRole   *models.UserRole `json:"target_role" validate:"omitempty,user_role"`
	DepartmentID *uint            `json:"department_id"`
}

// CertificateIssueRequest represents issuing a certificate to a student
type CertificateIssueRequest struct {
	StudentID   uint   `json:"student_id" validate:"required"`
	Type        string `json:"type" validate:"required,certificate_type"`
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// ResultUpsertRequest represents recording a semester result row
type ResultUpsertRequest struct {
	StudentID            uint    `json:"student_id" validate:"required"`
	SubjectID            uint    `json:"subject_id" validate:"required"`
	Semester             int     `json:"semester" validate:"required,semester"`
	AssignmentMarks      float64 `json:"assignment_marks" validate:"min=0,max=100"`
	ProjectMarks         float64 `json:"project_marks" validate:"min=0,max=100"`
	AttendancePercentage float64 `json:"attendance_percentage" validate:"min=0,max=100"`
	ExamMarks            float64 `json:"exam_marks" validate:"min=0,max=100"`
}

// ProfileUpdateRequest represents a user editing their own profile. A
// password change additionally requires the current password.
type ProfileUpdateRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Department  *string `json:"department" validate:"omitempty,max=100"`
	Password    *string `json:"password" validate:"omitempty,min=6,max=72"`
	OldPassword *string `json:"old_password" validate:"required_with=Password"`
}

// MessageSendRequest represents a teacher messaging one of their students
type MessageSendRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Title     string `json:"title" validate:"required,min=2,max=200"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// ResumeBuildRequest represents building a resume from structured content
type ResumeBuildRequest struct {
	Title   string               `json:"title" validate:"required,min=2,max=200"`
	Content models.ResumeContent `json:"content" validate:"required"`
}
