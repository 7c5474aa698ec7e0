package walletController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

// GetTokenTypes lists active token types (public, used by the buy-tokens page)
func GetTokenTypes(c *fiber.Ctx) error {
	var tokenTypes []models.TokenType
	if err := database.Database.Db.Where("is_deleted = false AND is_active = true").Order("created_at ASC").Find(&tokenTypes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch token types!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token types fetched!", tokenTypes)
}

// AdminCreateTokenType creates a new token type (Admin only)
func AdminCreateTokenType(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedTokenType").(*struct {
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		ConversionRate float64 `json:"conversionRate"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tokenType := models.TokenType{
		Name:           reqData.Name,
		Description:    reqData.Description,
		ConversionRate: reqData.ConversionRate,
		IsActive:       true,
	}

	if err := database.Database.Db.Create(&tokenType).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create token type!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Token type created successfully!", tokenType)
}

// AdminUpdateTokenType updates a token type (Admin only)
func AdminUpdateTokenType(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	tokenTypeID, err := c.ParamsInt("id")
	if err != nil || tokenTypeID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid token type ID!", nil)
	}

	var tokenType models.TokenType
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", tokenTypeID).First(&tokenType).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Token type not found!", nil)
	}

	reqData, ok := c.Locals("validatedTokenTypeUpdate").(*struct {
		Name           string   `json:"name"`
		Description    string   `json:"description"`
		ConversionRate *float64 `json:"conversionRate"`
		IsActive       *bool    `json:"isActive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Name != "" {
		tokenType.Name = reqData.Name
	}
	if reqData.Description != "" {
		tokenType.Description = reqData.Description
	}
	if reqData.ConversionRate != nil && *reqData.ConversionRate > 0 {
		tokenType.ConversionRate = *reqData.ConversionRate
	}
	if reqData.IsActive != nil {
		tokenType.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&tokenType).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update token type!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token type updated successfully!", tokenType)
}

// AdminDeleteTokenType soft deletes a token type (Admin only)
func AdminDeleteTokenType(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	tokenTypeID, err := c.ParamsInt("id")
	if err != nil || tokenTypeID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid token type ID!", nil)
	}

	var tokenType models.TokenType
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", tokenTypeID).First(&tokenType).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Token type not found!", nil)
	}

	tokenType.IsDeleted = true
	tokenType.IsActive = false
	if err := database.Database.Db.Save(&tokenType).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete token type!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token type deleted successfully!", nil)
}
