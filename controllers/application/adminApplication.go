package applicationController

import (
	"errors"

	walletController "learnhub/controllers/wallet"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminListApplications lists applications filtered by status (Admin only)
func AdminListApplications(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	status := c.Query("status", string(models.ApplicationStatusPending))
	search := c.Query("search")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.CourseApplication{}).Where("status = ?", status)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var applications []models.CourseApplication
	if err := query.
		Preload("Course").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&applications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched!", fiber.Map{
		"applications": applications,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetApplication returns a single application with its course (Admin only)
func AdminGetApplication(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid application ID!", nil)
	}

	var app models.CourseApplication
	if err := database.Database.Db.Preload("Course").First(&app, applicationID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application fetched!", app)
}

// AdminApproveApplication approves a pending application, debits the
// applicant's wallet by the course price and confirms the enrollment
// (Admin only)
func AdminApproveApplication(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid application ID!", nil)
	}

	result, err := ApproveApplication(database.Database.Db, uint(applicationID))
	if err != nil {
		var insufficient *walletController.InsufficientFundsError
		switch {
		case errors.Is(err, ErrApplicationNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
		case errors.Is(err, ErrApplicationNotPending):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application is not pending!", nil)
		case errors.As(err, &insufficient):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				"User does not have enough tokens for this course. "+insufficient.Error(), nil)
		case errors.Is(err, ErrEnrollmentNotCreated):
			// Approval and debit already happened; this must reach the admin loudly.
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false,
				"Application approved and tokens deducted, but enrollment creation failed. Manual follow-up required!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve application!", nil)
		}
	}

	// Notify the applicant; a failed email never fails the approval.
	go func(app *models.CourseApplication) {
		var course models.Course
		if err := database.Database.Db.First(&course, app.CourseID).Error; err == nil {
			utils.SendApplicationApprovedEmail(app.Email, app.FirstName, course.Title)
		}
	}(result.Application)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application approved and enrollment confirmed!", fiber.Map{
		"application":  result.Application,
		"enrollment":   result.Enrollment,
		"balanceAfter": result.BalanceAfter,
	})
}

// AdminRejectApplication rejects a pending application (Admin only)
func AdminRejectApplication(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid application ID!", nil)
	}

	app, err := RejectApplication(database.Database.Db, uint(applicationID))
	if err != nil {
		switch {
		case errors.Is(err, ErrApplicationNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
		case errors.Is(err, ErrApplicationNotPending):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application is not pending!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject application!", nil)
		}
	}

	go func(app *models.CourseApplication) {
		var course models.Course
		if err := database.Database.Db.First(&course, app.CourseID).Error; err == nil {
			utils.SendApplicationRejectedEmail(app.Email, app.FirstName, course.Title)
		}
	}(app)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application rejected!", app)
}
