package applicationController

import (
	"errors"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrApplicationResolved is returned when a user re-submits an
// application that an admin has already approved or rejected.
var ErrApplicationResolved = errors.New("application has already been resolved")

// Form carries the course application fields submitted by the user.
// Postal address fields are only meaningful when PostalAddressDifferent
// is set; the validator clears or requires them accordingly.
type Form struct {
	Title       string `json:"title" validate:"required,max=20"`
	FirstName   string `json:"first_name" validate:"required,max=100"`
	MiddleName  string `json:"middle_name" validate:"max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	NameChanged bool   `json:"name_changed"`
	Gender      string `json:"gender" validate:"required,oneof=male female other 'prefer not to say'"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email       string `json:"email" validate:"required,email"`
	Mobile      string `json:"mobile" validate:"required,max=20"`

	HighSchoolQualification string `json:"high_school_qualification" validate:"required"`
	HighSchoolName          string `json:"high_school_name" validate:"required"`
	HighSchoolCountry       string `json:"high_school_country" validate:"required"`
	HighSchoolCompleted     bool   `json:"high_school_completed"`
	HighSchoolYearCompleted *int   `json:"high_school_year_completed" validate:"omitempty,min=1940,max=2100"`
	HighSchoolLanguage      string `json:"high_school_language"`
	TertiaryQualification   string `json:"tertiary_qualification"`
	TertiaryInstitution     string `json:"tertiary_institution"`
	TertiaryCountry         string `json:"tertiary_country"`

	InAustralia   bool   `json:"in_australia"`
	StreetAddress string `json:"street_address" validate:"required"`
	AddressLine2  string `json:"address_line_2" validate:"max=200"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	PostalCode    string `json:"postal_code" validate:"required,max=12"`
	Country       string `json:"country" validate:"required"`

	PostalAddressDifferent bool   `json:"postal_address_different"`
	PostalStreetAddress    string `json:"postal_street_address" validate:"required_if=PostalAddressDifferent true"`
	PostalAddressLine2     string `json:"postal_address_line_2" validate:"max=200"`
	PostalCity             string `json:"postal_city" validate:"required_if=PostalAddressDifferent true"`
	PostalState            string `json:"postal_state" validate:"required_if=PostalAddressDifferent true"`
	PostalPostalCode       string `json:"postal_postal_code" validate:"required_if=PostalAddressDifferent true,max=12"`
	PostalCountry          string `json:"postal_country" validate:"required_if=PostalAddressDifferent true"`
}

func (f *Form) apply(app *models.CourseApplication) {
	app.Title = f.Title
	app.FirstName = f.FirstName
	app.MiddleName = f.MiddleName
	app.LastName = f.LastName
	app.NameChanged = f.NameChanged
	app.Gender = f.Gender
	app.DateOfBirth = f.DateOfBirth
	app.Email = f.Email
	app.Mobile = f.Mobile

	app.HighSchoolQualification = f.HighSchoolQualification
	app.HighSchoolName = f.HighSchoolName
	app.HighSchoolCountry = f.HighSchoolCountry
	app.HighSchoolCompleted = f.HighSchoolCompleted
	app.HighSchoolYearCompleted = f.HighSchoolYearCompleted
	app.HighSchoolLanguage = f.HighSchoolLanguage
	app.TertiaryQualification = f.TertiaryQualification
	app.TertiaryInstitution = f.TertiaryInstitution
	app.TertiaryCountry = f.TertiaryCountry

	app.InAustralia = f.InAustralia
	app.StreetAddress = f.StreetAddress
	app.AddressLine2 = f.AddressLine2
	app.City = f.City
	app.State = f.State
	app.PostalCode = f.PostalCode
	app.Country = f.Country

	app.PostalAddressDifferent = f.PostalAddressDifferent
	if f.PostalAddressDifferent {
		app.PostalStreetAddress = &f.PostalStreetAddress
		app.PostalAddressLine2 = &f.PostalAddressLine2
		app.PostalCity = &f.PostalCity
		app.PostalState = &f.PostalState
		app.PostalPostalCode = &f.PostalPostalCode
		app.PostalCountry = &f.PostalCountry
	} else {
		app.PostalStreetAddress = nil
		app.PostalAddressLine2 = nil
		app.PostalCity = nil
		app.PostalState = nil
		app.PostalPostalCode = nil
		app.PostalCountry = nil
	}
}

// SubmitOrUpdate creates the (user, course) application on first
// submission, or overwrites its fields while it is still pending.
// Returns ErrApplicationResolved once an admin has approved or
// rejected it. The second return reports whether a row was created.
func SubmitOrUpdate(db *gorm.DB, userID, courseID uint, form *Form) (*models.CourseApplication, bool, error) {
	var app models.CourseApplication
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&app).Error

	if err == nil {
		if app.Status != models.ApplicationStatusPending {
			return nil, false, ErrApplicationResolved
		}
		form.apply(&app)
		if err := db.Save(&app).Error; err != nil {
			return nil, false, err
		}
		return &app, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	app = models.CourseApplication{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.ApplicationStatusPending,
	}
	form.apply(&app)
	if err := db.Create(&app).Error; err != nil {
		return nil, false, err
	}
	return &app, true, nil
}

// SubmitApplication handles application submission for a course
func SubmitApplication(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	form, ok := c.Locals("validatedApplication").(*Form)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	app, created, err := SubmitOrUpdate(database.Database.Db, userID, uint(courseID), form)
	if err != nil {
		if errors.Is(err, ErrApplicationResolved) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application has already been resolved!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
	}

	message := "Application updated successfully!"
	status := fiber.StatusOK
	if created {
		message = "Application submitted successfully!"
		status = fiber.StatusCreated
	}

	return middleware.JsonResponse(c, status, true, message, app)
}

// GetMyApplication returns the caller's application for a course
func GetMyApplication(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var app models.CourseApplication
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&app).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application fetched!", app)
}
