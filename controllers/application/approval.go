package applicationController

import (
	"errors"
	"log"
	"time"

	walletController "learnhub/controllers/wallet"
	"learnhub/models"

	"gorm.io/gorm"
)

var (
	// ErrApplicationNotFound is returned when the application id does not exist
	ErrApplicationNotFound = errors.New("application not found")

	// ErrApplicationNotPending is returned when approving or rejecting an
	// application that has already been resolved. Guards against double
	// approval and therefore double debit.
	ErrApplicationNotPending = errors.New("application is not pending")

	// ErrEnrollmentNotCreated is returned when the enrollment record could
	// not be produced after the application was approved and the wallet
	// debited. The approval and the debit are NOT rolled back; the
	// inconsistency is surfaced for manual admin follow-up.
	ErrEnrollmentNotCreated = errors.New("enrollment record missing after approval")
)

// ApprovalResult is returned on successful approval
type ApprovalResult struct {
	Application  *models.CourseApplication
	Enrollment   *models.CourseEnrollment
	BalanceAfter int64
}

// ApproveApplication runs the admin approval workflow for one
// application:
//
//  1. load the application, require status pending
//  2. load the course price
//  3. require wallet balance >= price before touching anything
//  4. flip pending -> approved and debit the wallet in one database
//     transaction; the conditional status update rejects a concurrent
//     approval of the same application
//  5. produce the enrollment record; if that fails the approval and
//     debit stand and ErrEnrollmentNotCreated is returned
func ApproveApplication(db *gorm.DB, applicationID uint) (*ApprovalResult, error) {
	var app models.CourseApplication
	if err := db.First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, ErrApplicationNotPending
	}

	var course models.Course
	if err := db.First(&course, app.CourseID).Error; err != nil {
		return nil, err
	}

	balance, err := walletController.GetBalance(db, app.UserID, course.TokenTypeID)
	if err != nil {
		return nil, err
	}
	if balance < course.Price {
		return nil, &walletController.InsufficientFundsError{Have: balance, Need: course.Price}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CourseApplication{}).
			Where("id = ? AND status = ?", app.ID, models.ApplicationStatusPending).
			Update("status", models.ApplicationStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrApplicationNotPending
		}
		return walletController.Debit(tx, app.UserID, course.TokenTypeID, course.Price)
	})
	if err != nil {
		return nil, err
	}
	app.Status = models.ApplicationStatusApproved

	enrollment, err := EnsureEnrollment(db, app.UserID, app.CourseID)
	if err != nil {
		log.Printf("[APPROVAL] application %d approved and wallet debited, but enrollment is missing: %v", app.ID, err)
		return nil, ErrEnrollmentNotCreated
	}

	balanceAfter, err := walletController.GetBalance(db, app.UserID, course.TokenTypeID)
	if err != nil {
		return nil, err
	}

	return &ApprovalResult{
		Application:  &app,
		Enrollment:   enrollment,
		BalanceAfter: balanceAfter,
	}, nil
}

// RejectApplication transitions a pending application to rejected. No
// wallet or enrollment interaction.
func RejectApplication(db *gorm.DB, applicationID uint) (*models.CourseApplication, error) {
	var app models.CourseApplication
	if err := db.First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	res := db.Model(&models.CourseApplication{}).
		Where("id = ? AND status = ?", app.ID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusRejected)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrApplicationNotPending
	}

	app.Status = models.ApplicationStatusRejected
	return &app, nil
}

// EnsureEnrollment returns the enrollment for (user, course), creating
// a pending one if none exists yet.
func EnsureEnrollment(db *gorm.DB, userID, courseID uint) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if err == nil {
		return &enrollment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment = models.CourseEnrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     models.EnrollmentStatusPending,
		EnrolledAt: time.Now(),
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}
