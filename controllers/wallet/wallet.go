package walletController

import (
	"errors"
	"fmt"
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidAmount is returned when a credit or debit amount is zero or negative
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// InsufficientFundsError is returned when a debit would push the balance below zero
type InsufficientFundsError struct {
	Have int64
	Need int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient tokens: has %d, needs %d", e.Have, e.Need)
}

// GetBalance returns the user's balance for a token type. A missing
// wallet row means a balance of zero, not an error.
func GetBalance(db *gorm.DB, userID, tokenTypeID uint) (int64, error) {
	var wallet models.UserWallet
	err := db.Where("user_id = ? AND token_type_id = ?", userID, tokenTypeID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return wallet.Tokens, nil
}

// Credit adds tokens to a wallet as a single upsert statement, creating
// the row if it does not exist yet. Safe under concurrent credits.
func Credit(db *gorm.DB, userID, tokenTypeID uint, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	wallet := models.UserWallet{
		UserID:      userID,
		TokenTypeID: tokenTypeID,
		Tokens:      amount,
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "token_type_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"tokens":     gorm.Expr("user_wallets.tokens + excluded.tokens"),
			"updated_at": time.Now(),
		}),
	}).Create(&wallet).Error
}

// Debit removes tokens from a wallet as a single conditional update so
// that concurrent debits can never overdraw the balance. The balance
// check and the decrement happen in one statement; zero rows affected
// means the balance was below the requested amount.
func Debit(db *gorm.DB, userID, tokenTypeID uint, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	res := db.Model(&models.UserWallet{}).
		Where("user_id = ? AND token_type_id = ? AND tokens >= ?", userID, tokenTypeID, amount).
		Update("tokens", gorm.Expr("tokens - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		have, err := GetBalance(db, userID, tokenTypeID)
		if err != nil {
			return err
		}
		return &InsufficientFundsError{Have: have, Need: amount}
	}
	return nil
}

// GrantTokens credits a user's wallet and writes the audit Transaction
// row in one database transaction (admin manual grant).
func GrantTokens(db *gorm.DB, adminID, userID, tokenTypeID uint, amount int64, reason string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	grant := models.Transaction{
		AdminID:     adminID,
		UserID:      userID,
		TokenTypeID: tokenTypeID,
		Tokens:      amount,
		Reason:      reason,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&grant).Error; err != nil {
			return err
		}
		return Credit(tx, userID, tokenTypeID, amount)
	})
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// GetWalletBalances returns the caller's balances across all token types
func GetWalletBalances(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	var wallets []models.UserWallet
	if err := database.Database.Db.Where("user_id = ?", userId).Preload("TokenType").Find(&wallets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch balances!", nil)
	}

	balances := make([]fiber.Map, 0, len(wallets))
	for _, w := range wallets {
		balances = append(balances, fiber.Map{
			"tokenTypeId": w.TokenTypeID,
			"tokenType":   w.TokenType.Name,
			"tokens":      w.Tokens,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balances fetched!", fiber.Map{
		"balances": balances,
	})
}

// AddTokens adds tokens to a user's wallet (Admin only)
func AddTokens(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedAddTokens").(*struct {
		UserID      uint   `json:"userId"`
		TokenTypeID uint   `json:"tokenTypeId"`
		Tokens      int64  `json:"tokens"`
		Reason      string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var targetUser models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&targetUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var tokenType models.TokenType
	if err := db.Where("id = ? AND is_deleted = false", reqData.TokenTypeID).First(&tokenType).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Token type not found!", nil)
	}

	grant, err := GrantTokens(db, userId, reqData.UserID, reqData.TokenTypeID, reqData.Tokens, reqData.Reason)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Tokens must be greater than 0!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add tokens!", nil)
	}

	newBalance, _ := GetBalance(db, reqData.UserID, reqData.TokenTypeID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tokens added successfully!", fiber.Map{
		"transactionId": grant.ID,
		"userId":        reqData.UserID,
		"tokenType":     tokenType.Name,
		"tokensAdded":   reqData.Tokens,
		"newBalance":    newBalance,
		"addedBy":       admin.Name,
	})
}

// GetUserBalances returns a specific user's balances (Admin only)
func GetUserBalances(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	targetUserId := c.QueryInt("userId", 0)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	if targetUserId == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "userId is required!", nil)
	}

	db := database.Database.Db

	var targetUser models.User
	if err := db.Where("id = ? AND is_deleted = false", targetUserId).First(&targetUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var wallets []models.UserWallet
	if err := db.Where("user_id = ?", targetUserId).Preload("TokenType").Find(&wallets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch balances!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User balances fetched!", fiber.Map{
		"userId":  targetUser.ID,
		"name":    targetUser.Name,
		"email":   targetUser.Email,
		"wallets": wallets,
	})
}

// GetTransactions returns the admin grant audit trail (Admin only)
func GetTransactions(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	targetUserId := c.QueryInt("userId", 0)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Transaction{})
	if targetUserId > 0 {
		query = query.Where("user_id = ?", targetUserId)
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetGrantStats returns month-to-date token grant totals (Admin only)
func GetGrantStats(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	db := database.Database.Db
	monthStart := now.BeginningOfMonth()

	var granted int64
	db.Model(&models.Transaction{}).
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(tokens), 0)").
		Scan(&granted)

	var count int64
	db.Model(&models.Transaction{}).Where("created_at >= ?", monthStart).Count(&count)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grant stats fetched!", fiber.Map{
		"since":         monthStart,
		"tokensGranted": granted,
		"grantCount":    count,
	})
}
