package applicationController

import (
	"errors"
	"testing"

	walletController "learnhub/controllers/wallet"
	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseApplication{},
		&models.CourseEnrollment{},
		&models.TokenType{},
		&models.UserWallet{},
	))
	return db
}

// seedApproval creates a user, a 100-token course and a pending
// application, and funds the wallet with the given balance.
func seedApproval(t *testing.T, db *gorm.DB, balance int64) *models.CourseApplication {
	t.Helper()

	user := models.User{Name: "Dana", Email: "dana@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	course := models.Course{Title: "Intro to Go", Price: 100, TokenTypeID: 1, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	app := models.CourseApplication{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   models.ApplicationStatusPending,
	}
	require.NoError(t, db.Create(&app).Error)

	if balance > 0 {
		require.NoError(t, walletController.Credit(db, user.ID, 1, balance))
	}
	return &app
}

func TestApproveDebitsAndEnrolls(t *testing.T) {
	db := setupTestDB(t)
	app := seedApproval(t, db, 250)

	result, err := ApproveApplication(db, app.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusApproved, result.Application.Status)
	assert.Equal(t, int64(150), result.BalanceAfter)
	require.NotNil(t, result.Enrollment)
	assert.Equal(t, app.UserID, result.Enrollment.UserID)
	assert.Equal(t, app.CourseID, result.Enrollment.CourseID)
	assert.Equal(t, models.EnrollmentStatusPending, result.Enrollment.Status)

	var stored models.CourseApplication
	require.NoError(t, db.First(&stored, app.ID).Error)
	assert.Equal(t, models.ApplicationStatusApproved, stored.Status)
}

func TestApproveInsufficientBalanceChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	app := seedApproval(t, db, 40)

	_, err := ApproveApplication(db, app.ID)
	var insufficient *walletController.InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(40), insufficient.Have)
	assert.Equal(t, int64(100), insufficient.Need)

	// application still pending, balance untouched, no enrollment
	var stored models.CourseApplication
	require.NoError(t, db.First(&stored, app.ID).Error)
	assert.Equal(t, models.ApplicationStatusPending, stored.Status)

	balance, err := walletController.GetBalance(db, app.UserID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)

	var count int64
	db.Model(&models.CourseEnrollment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestApproveTwiceFailsSecondTime(t *testing.T) {
	db := setupTestDB(t)
	app := seedApproval(t, db, 500)

	_, err := ApproveApplication(db, app.ID)
	require.NoError(t, err)

	_, err = ApproveApplication(db, app.ID)
	assert.ErrorIs(t, err, ErrApplicationNotPending)

	// only one debit happened
	balance, err := walletController.GetBalance(db, app.UserID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance)
}

func TestApproveEnrollmentFailureKeepsApprovalAndDebit(t *testing.T) {
	db := setupTestDB(t)
	app := seedApproval(t, db, 300)

	// Make the enrollment write fail after the approval transaction
	require.NoError(t, db.Migrator().DropTable(&models.CourseEnrollment{}))

	_, err := ApproveApplication(db, app.ID)
	assert.ErrorIs(t, err, ErrEnrollmentNotCreated)

	// approval and debit stand; the inconsistency is surfaced, not
	// rolled back
	var stored models.CourseApplication
	require.NoError(t, db.First(&stored, app.ID).Error)
	assert.Equal(t, models.ApplicationStatusApproved, stored.Status)

	balance, err := walletController.GetBalance(db, app.UserID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance)
}

func TestApproveUnknownApplication(t *testing.T) {
	db := setupTestDB(t)

	_, err := ApproveApplication(db, 12345)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestRejectPendingApplication(t *testing.T) {
	db := setupTestDB(t)
	app := seedApproval(t, db, 100)

	rejected, err := RejectApplication(db, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, rejected.Status)

	// rejection never touches the wallet
	balance, err := walletController.GetBalance(db, app.UserID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestRejectThenApproveFails(t *testing.T) {
	db := setupTestDB(t)
	app := seedApproval(t, db, 100)

	_, err := RejectApplication(db, app.ID)
	require.NoError(t, err)

	_, err = ApproveApplication(db, app.ID)
	assert.ErrorIs(t, err, ErrApplicationNotPending)
}

func TestEnsureEnrollmentIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := EnsureEnrollment(db, 1, 2)
	require.NoError(t, err)

	second, err := EnsureEnrollment(db, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.CourseEnrollment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
