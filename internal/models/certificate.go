package models

import "time"

type Certificate struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StudentID   uint      `json:"student_id" gorm:"index;not null"`
	Type        string    `json:"certificate_type" gorm:"column:certificate_type;size:50"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"type:text"`
	IssueDate   time.Time `json:"issue_date" gorm:"type:date"`

	// Human-shareable code, format ACAD-YYYYMMDD-NNNN; sole key for public
	// verification.
	Code string `json:"certificate_code" gorm:"column:certificate_code;uniqueIndex;not null;size:30"`

	FilePath   string `json:"file_path" gorm:"size:500"`
	IssuedBy   uint   `json:"issued_by"`
	IsVerified bool   `json:"is_verified" gorm:"default:true"`

	Student *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Issuer  *User `json:"issuer,omitempty" gorm:"foreignKey:IssuedBy"`

	CreatedAt time.Time `json:"created_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}
