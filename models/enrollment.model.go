package models

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus defines the status of a course enrollment
type EnrollmentStatus string

const (
	EnrollmentStatusPending   EnrollmentStatus = "pending"
	EnrollmentStatusConfirmed EnrollmentStatus = "confirmed"
)

// CourseEnrollment grants a user access to a course's content. Created
// by the approval workflow once the application is approved and paid.
type CourseEnrollment struct {
	gorm.Model
	UserID     uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID   uint             `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Status     EnrollmentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Progress   float64          `json:"progress" gorm:"default:0"` // completion percentage (0-100)
	EnrolledAt time.Time        `json:"enrolled_at"`
	IsDeleted  bool             `json:"-" gorm:"default:false"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
