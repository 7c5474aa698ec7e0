package applicationValidator

import (
	"reflect"
	"strings"

	applicationController "learnhub/controllers/application"
	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator builds a validator that reports failed fields under
// their json names, so error keys always match what the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessage turns a single failed rule into a human message
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required!"
	case "email":
		return "Invalid email!"
	case "oneof":
		return "Value must be one of: " + fe.Param()
	case "datetime":
		return "Date must be in YYYY-MM-DD format!"
	case "max":
		return "Value is too long!"
	case "min":
		return "Value is too small!"
	}
	return "Invalid value!"
}

// CourseID parses and validates the course id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("courseId")
		if err != nil || courseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// SubmitApplication validates the full application form
func SubmitApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(applicationController.Form)
		if err := c.BodyParser(form); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(form); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				errors[fe.Field()] = fieldMessage(fe)
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApplication", form)
		return c.Next()
	}
}
