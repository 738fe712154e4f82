package models

import "time"

type Announcement struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Title   string `json:"title" gorm:"not null;size:200"`
	Content string `json:"content" gorm:"not null;type:text"`

	PostedBy uint `json:"posted_by" gorm:"index"`

	// Optional targeting. Nil role and nil department means all active users.
	TargetRole   *UserRole `json:"target_role" gorm:"size:20"`
	DepartmentID *uint     `json:"department_id"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	Poster     *User       `json:"poster,omitempty" gorm:"foreignKey:PostedBy"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`

	CreatedAt time.Time `json:"created_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}
