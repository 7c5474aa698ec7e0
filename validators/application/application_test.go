package applicationValidator

import (
	"testing"

	applicationController "learnhub/controllers/application"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *applicationController.Form {
	return &applicationController.Form{
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

		StreetAddress: "1 Example St",
		City:          "Sydney",
		State:         "NSW",
		PostalCode:    "2000",
		Country:       "Australia",
	}
}

func errorKeys(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	keys := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		keys[fe.Field()] = fe.Tag()
	}
	return keys
}

func TestValidFormPasses(t *testing.T) {
	assert.NoError(t, validate.Struct(validForm()))
}

func TestErrorKeysUseJsonTags(t *testing.T) {
	form := validForm()
	form.FirstName = ""
	form.DateOfBirth = "12/04/1998"
	form.Email = "nope"

	keys := errorKeys(t, validate.Struct(form))
	assert.Contains(t, keys, "first_name")
	assert.Contains(t, keys, "date_of_birth")
	assert.Contains(t, keys, "email")
	assert.NotContains(t, keys, "FirstName")
}

func TestDigitFieldKeyMatchesJsonTag(t *testing.T) {
	form := validForm()
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	form.AddressLine2 = string(long)

	keys := errorKeys(t, validate.Struct(form))
	assert.Contains(t, keys, "address_line_2")
	assert.NotContains(t, keys, "address_line2")
}

func TestPostalBlockRequiredOnlyWhenDifferent(t *testing.T) {
	form := validForm()
	form.PostalAddressDifferent = true

	keys := errorKeys(t, validate.Struct(form))
	assert.Contains(t, keys, "postal_street_address")
	assert.Contains(t, keys, "postal_city")
	assert.Contains(t, keys, "postal_country")

	form.PostalAddressDifferent = false
	assert.NoError(t, validate.Struct(form))
}
