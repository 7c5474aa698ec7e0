package applicationController

import (
	"testing"

	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForm() *Form {
	return &Form{
		Title:       "Ms",
		FirstName:   "Dana",
		LastName:    "Nguyen",
		Gender:      "female",
		DateOfBirth: "1998-04-12",
		Email:       "dana@example.com",
		Mobile:      "0400000000",

		HighSchoolQualification: "HSC",
		HighSchoolName:          "Northside High",
		HighSchoolCountry:       "Australia",
		HighSchoolCompleted:     true,

		InAustralia:   true,
		StreetAddress: "1 Example St",
		City:          "Sydney",
		State:         "NSW",
		PostalCode:    "2000",
		Country:       "Australia",
	}
}

func TestSubmitCreatesApplication(t *testing.T) {
	db := setupTestDB(t)

	app, created, err := SubmitOrUpdate(db, 1, 2, sampleForm())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Equal(t, "Dana", app.FirstName)
	assert.Nil(t, app.PostalStreetAddress)
}

func TestResubmitWhilePendingUpdatesInPlace(t *testing.T) {
	db := setupTestDB(t)

	first, created, err := SubmitOrUpdate(db, 1, 2, sampleForm())
	require.NoError(t, err)
	require.True(t, created)

	form := sampleForm()
	form.Mobile = "0411111111"
	second, created, err := SubmitOrUpdate(db, 1, 2, form)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "0411111111", second.Mobile)

	var count int64
	db.Model(&models.CourseApplication{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResubmitAfterResolutionIsRejected(t *testing.T) {
	db := setupTestDB(t)

	app, _, err := SubmitOrUpdate(db, 1, 2, sampleForm())
	require.NoError(t, err)

	require.NoError(t, db.Model(app).Update("status", models.ApplicationStatusApproved).Error)

	_, _, err = SubmitOrUpdate(db, 1, 2, sampleForm())
	assert.ErrorIs(t, err, ErrApplicationResolved)
}

func TestSeparateCoursesGetSeparateApplications(t *testing.T) {
	db := setupTestDB(t)

	_, created, err := SubmitOrUpdate(db, 1, 2, sampleForm())
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = SubmitOrUpdate(db, 1, 3, sampleForm())
	require.NoError(t, err)
	assert.True(t, created)
}

func TestPostalAddressStoredOnlyWhenDifferent(t *testing.T) {
	db := setupTestDB(t)

	form := sampleForm()
	form.PostalAddressDifferent = true
	form.PostalStreetAddress = "PO Box 12"
	form.PostalCity = "Sydney"
	form.PostalState = "NSW"
	form.PostalPostalCode = "2001"
	form.PostalCountry = "Australia"

	app, _, err := SubmitOrUpdate(db, 1, 2, form)
	require.NoError(t, err)
	require.NotNil(t, app.PostalStreetAddress)
	assert.Equal(t, "PO Box 12", *app.PostalStreetAddress)

	// switching back clears the stored postal block
	form.PostalAddressDifferent = false
	app, _, err = SubmitOrUpdate(db, 1, 2, form)
	require.NoError(t, err)
	assert.Nil(t, app.PostalStreetAddress)
	assert.Nil(t, app.PostalCity)
}
