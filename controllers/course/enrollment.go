package courseController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyEnrollments lists the caller's course enrollments
func GetMyEnrollments(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	var enrollments []models.CourseEnrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userId).
		Preload("Course").
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		result = append(result, fiber.Map{
			"enrollmentId": e.ID,
			"courseId":     e.CourseID,
			"title":        e.Course.Title,
			"thumbnailUrl": e.Course.ThumbnailURL,
			"status":       e.Status,
			"progress":     e.Progress,
			"enrolledAt":   e.EnrolledAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched!", fiber.Map{
		"enrollments": result,
	})
}

// UpdateProgress records the caller's completion percentage on a course
func UpdateProgress(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseId, err := c.ParamsInt("courseId")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Progress float64 `json:"progress"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment models.CourseEnrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = false", userId, courseId).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	enrollment.Progress = reqData.Progress
	if enrollment.Progress >= 100 {
		enrollment.Progress = 100
		enrollment.Status = models.EnrollmentStatusConfirmed
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", fiber.Map{
		"courseId": enrollment.CourseID,
		"progress": enrollment.Progress,
		"status":   enrollment.Status,
	})
}

// AdminListEnrollments lists enrollments for a course (Admin only)
func AdminListEnrollments(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseId, err := c.ParamsInt("courseId")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

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

	query := db.Model(&models.CourseEnrollment{}).Where("course_id = ? AND is_deleted = false", courseId)

	var total int64
	query.Count(&total)

	var enrollments []models.CourseEnrollment
	if err := query.
		Order("enrolled_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
