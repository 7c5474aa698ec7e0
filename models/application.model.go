package models

import (
	"gorm.io/gorm"
)

// ApplicationStatus defines the lifecycle state of a course application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// CourseApplication is a user's request to enroll in a paid course.
// One row per (user, course); re-submission overwrites the form fields
// while the application is still pending. Status transitions are
// admin-only and terminal once resolved.
type CourseApplication struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_application_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_application_user_course"`

	// Personal details
	Title       string `json:"title" gorm:"type:varchar(20)"` // Mr, Ms, Dr...
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	NameChanged bool   `json:"name_changed" gorm:"default:false"`
	Gender      string `json:"gender" gorm:"type:varchar(20)"`
	DateOfBirth string `json:"date_of_birth" gorm:"type:varchar(10)"` // YYYY-MM-DD
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`

	// Education history
	HighSchoolQualification string `json:"high_school_qualification"`
	HighSchoolName          string `json:"high_school_name"`
	HighSchoolCountry       string `json:"high_school_country"`
	HighSchoolCompleted     bool   `json:"high_school_completed" gorm:"default:false"`
	HighSchoolYearCompleted *int   `json:"high_school_year_completed"`
	HighSchoolLanguage      string `json:"high_school_language"`
	TertiaryQualification   string `json:"tertiary_qualification"`
	TertiaryInstitution     string `json:"tertiary_institution"`
	TertiaryCountry         string `json:"tertiary_country"`

	// Residential address
	InAustralia   bool   `json:"in_australia" gorm:"default:false"`
	StreetAddress string `json:"street_address"`
	AddressLine2  string `json:"address_line_2"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`

	// Postal address, only populated when it differs from residential
	PostalAddressDifferent bool    `json:"postal_address_different" gorm:"default:false"`
	PostalStreetAddress    *string `json:"postal_street_address"`
	PostalAddressLine2     *string `json:"postal_address_line_2"`
	PostalCity             *string `json:"postal_city"`
	PostalState            *string `json:"postal_state"`
	PostalPostalCode       *string `json:"postal_postal_code"`
	PostalCountry          *string `json:"postal_country"`

	Status ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relations - omit in JSON by default (only load when needed)
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (CourseApplication) TableName() string {
	return "course_applications"
}
