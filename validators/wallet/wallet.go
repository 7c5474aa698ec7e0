package walletValidator

import (
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// AddTokens validator middleware (Admin grant)
func AddTokens() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID      uint   `json:"userId"`
			TokenTypeID uint   `json:"tokenTypeId"`
			Tokens      int64  `json:"tokens"`
			Reason      string `json:"reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User is required!"
		}

		if reqData.TokenTypeID == 0 {
			errors["tokenTypeId"] = "Token type is required!"
		}

		if reqData.Tokens <= 0 {
			errors["tokens"] = "Tokens must be greater than 0!"
		}

		if strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "Reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddTokens", reqData)
		return c.Next()
	}
}

// CreateTokenType validator middleware (Admin)
func CreateTokenType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name           string  `json:"name"`
			Description    string  `json:"description"`
			ConversionRate float64 `json:"conversionRate"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if reqData.ConversionRate <= 0 {
			errors["conversionRate"] = "Conversion rate must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTokenType", reqData)
		return c.Next()
	}
}

// UpdateTokenType validator middleware (Admin)
func UpdateTokenType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name           string   `json:"name"`
			Description    string   `json:"description"`
			ConversionRate *float64 `json:"conversionRate"`
			IsActive       *bool    `json:"isActive"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ConversionRate != nil && *reqData.ConversionRate <= 0 {
			errors["conversionRate"] = "Conversion rate must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTokenTypeUpdate", reqData)
		return c.Next()
	}
}
