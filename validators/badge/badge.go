package badgeValidator

import (
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateBadge validator middleware (Admin)
func CreateBadge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name               string `json:"name"`
			Description        string `json:"description"`
			ImageURL           string `json:"imageUrl"`
			NFTContractAddress string `json:"nftContractAddress"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBadge", reqData)
		return c.Next()
	}
}

// UpdateBadge validator middleware (Admin)
func UpdateBadge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name               string `json:"name"`
			Description        string `json:"description"`
			ImageURL           string `json:"imageUrl"`
			NFTContractAddress string `json:"nftContractAddress"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedBadgeUpdate", reqData)
		return c.Next()
	}
}

// MintBadge validator middleware (Admin)
func MintBadge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID  uint `json:"userId"`
			BadgeID uint `json:"badgeId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User is required!"
		}

		if reqData.BadgeID == 0 {
			errors["badgeId"] = "Badge is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMintBadge", reqData)
		return c.Next()
	}
}
