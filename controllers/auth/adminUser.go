package authController

import (
	"errors"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a block/unblock target does not
// exist or is already in the requested state
var ErrUserNotFound = errors.New("user not found")

// SetUserBlocked flips the account flag every authenticated query
// filters on, so a blocked user cannot log in or reach any handler.
// The conditional update makes a repeated block (or unblock) report
// ErrUserNotFound instead of silently succeeding.
func SetUserBlocked(db *gorm.DB, userID uint, blocked bool) error {
	res := db.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", userID, !blocked).
		Update("is_deleted", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AdminListUsers lists all accounts, blocked ones included (Admin only)
func AdminListUsers(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")
	role := c.Query("role")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR mobile LIKE ?", like, like, like)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	result := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		result = append(result, fiber.Map{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"mobile":    u.Mobile,
			"role":      u.Role,
			"blocked":   u.IsDeleted,
			"lastLogin": u.LastLogin,
			"createdAt": u.CreatedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched!", fiber.Map{
		"users": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetUser returns one account with its wallet balances (Admin only)
func AdminGetUser(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	targetId, err := c.ParamsInt("id")
	if err != nil || targetId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, targetId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var wallets []models.UserWallet
	if err := db.Where("user_id = ?", user.ID).Preload("TokenType").Find(&wallets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	balances := make([]fiber.Map, 0, len(wallets))
	for _, w := range wallets {
		balances = append(balances, fiber.Map{
			"tokenTypeId": w.TokenTypeID,
			"tokenType":   w.TokenType.Name,
			"tokens":      w.Tokens,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched!", fiber.Map{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"mobile":        user.Mobile,
		"role":          user.Role,
		"headline":      user.Headline,
		"bio":           user.Bio,
		"walletAddress": user.WalletAddress,
		"blocked":       user.IsDeleted,
		"lastLogin":     user.LastLogin,
		"createdAt":     user.CreatedAt,
		"balances":      balances,
	})
}

// AdminBlockUser blocks an account (Admin only)
func AdminBlockUser(c *fiber.Ctx) error {
	return adminSetBlocked(c, true, "User blocked!", "User not found or already blocked!")
}

// AdminUnblockUser restores a blocked account (Admin only)
func AdminUnblockUser(c *fiber.Ctx) error {
	return adminSetBlocked(c, false, "User unblocked!", "User not found or not blocked!")
}

func adminSetBlocked(c *fiber.Ctx, blocked bool, okMessage, missingMessage string) error {
	userId := c.Locals("userId").(uint)
	targetId, err := c.ParamsInt("id")
	if err != nil || targetId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	if uint(targetId) == userId {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot block your own account!", nil)
	}

	if err := SetUserBlocked(database.Database.Db, uint(targetId), blocked); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, missingMessage, nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, okMessage, nil)
}
