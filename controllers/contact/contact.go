package contactController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitContact stores a message from the public contact form
func SubmitContact(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContact").(*struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission := models.ContactSubmission{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Subject: reqData.Subject,
		Message: reqData.Message,
	}
	if err := database.Database.Db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message received. We will get back to you soon!", fiber.Map{
		"id": submission.ID,
	})
}

// AdminListContacts lists contact submissions (Admin only)
func AdminListContacts(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	resolved := c.Query("resolved")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.ContactSubmission{})
	if resolved == "true" {
		query = query.Where("is_resolved = true")
	} else if resolved == "false" {
		query = query.Where("is_resolved = false")
	}

	var total int64
	query.Count(&total)

	var submissions []models.ContactSubmission
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched!", fiber.Map{
		"messages": submissions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminResolveContact marks a contact submission handled (Admin only)
func AdminResolveContact(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	contactId, err := c.ParamsInt("id")
	if err != nil || contactId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid message id!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	res := database.Database.Db.Model(&models.ContactSubmission{}).
		Where("id = ? AND is_resolved = false", contactId).
		Update("is_resolved", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve message!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found or already resolved!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message resolved!", nil)
}
