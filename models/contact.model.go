package models

import "gorm.io/gorm"

// ContactSubmission stores messages from the public contact form
type ContactSubmission struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email" gorm:"not null"`
	Subject    string `json:"subject"`
	Message    string `json:"message" gorm:"type:text;not null"`
	IsResolved bool   `json:"is_resolved" gorm:"default:false"`
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
