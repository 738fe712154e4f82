package models

import "time"

type Department struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Code string `json:"code" gorm:"uniqueIndex;not null;size:20"`

	// Optional department head, a user with role=teacher.
	HeadID *uint `json:"head_id"`
	Head   *User `json:"head,omitempty" gorm:"foreignKey:HeadID"`

	CreatedAt time.Time `json:"created_at"`
}

func (Department) TableName() string {
	return "departments"
}

type Subject struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null;size:100"`
	Code         string `json:"code" gorm:"uniqueIndex;not null;size:20"`
	DepartmentID uint   `json:"department_id" gorm:"index"`
	TeacherID    uint   `json:"teacher_id" gorm:"index"`
	Credits      int    `json:"credits" gorm:"default:3"`
	Semester     int    `json:"semester"`

	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Teacher    *User       `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	CreatedAt time.Time `json:"created_at"`
}

func (Subject) TableName() string {
	return "subjects"
}

type EnrollmentStatus string

const (
	EnrollmentActive  EnrollmentStatus = "active"
	EnrollmentDropped EnrollmentStatus = "dropped"
)

type Enrollment struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID uint             `json:"student_id" gorm:"uniqueIndex:idx_enrollment_student_subject;not null"`
	SubjectID uint             `json:"subject_id" gorm:"uniqueIndex:idx_enrollment_student_subject;not null"`
	Status    EnrollmentStatus `json:"status" gorm:"default:active;size:20"`

	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`

	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
