package models

import (
	"time"

	"gorm.io/datatypes"
)

type ResumeType string

const (
	ResumeGenerated ResumeType = "generated"
	ResumeUploaded  ResumeType = "uploaded"
)

type Resume struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	StudentID uint       `json:"student_id" gorm:"index;not null"`
	Title     string     `json:"title" gorm:"size:200"`
	Type      ResumeType `json:"resume_type" gorm:"column:resume_type;not null;size:20"`

	// Structured content for generated resumes; empty for uploads.
	Data datatypes.JSON `json:"resume_data" gorm:"column:resume_data"`

	// Stored file for uploaded resumes.
	FilePath string `json:"file_path" gorm:"size:500"`

	// Advisory free text from the generative-text adapter, displayed as-is.
	// The two scores are placeholders, never parsed from the adapter output.
	AIAnalysis    *string    `json:"ai_analysis" gorm:"column:ai_analysis;type:text"`
	AnalysisScore *float64   `json:"analysis_score"` // 0-10
	ATSScore      *float64   `json:"ats_score" gorm:"column:ats_score"` // 0-100
	AnalyzedAt    *time.Time `json:"analyzed_at"`

	Student *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	CreatedAt time.Time `json:"created_at"`
}

func (Resume) TableName() string {
	return "resumes"
}

// ResumeContent is the structured body of a generated resume.
type ResumeContent struct {
	PersonalInfo ResumePersonalInfo `json:"personal_info"`
	Summary      string             `json:"summary"`
	Education    []ResumeEducation  `json:"education"`
	Experience   []ResumeExperience `json:"experience"`
	Skills       []string           `json:"skills"`
	Projects     []ResumeProject    `json:"projects"`
}

type ResumePersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

type ResumeEducation struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	Grade       string `json:"grade"`
}

type ResumeExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type ResumeProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Technology  string `json:"technology"`
	URL         string `json:"url"`
}
