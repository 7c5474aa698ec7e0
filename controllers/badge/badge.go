package badgeController

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// minter signs and submits badge mints; injected at startup. Nil when
// no Ethereum provider is configured, in which case minting is disabled
// but badge CRUD keeps working.
var minter *utils.Minter

// Init wires the on-chain minter used by AdminMintBadge
func Init(m *utils.Minter) {
	minter = m
}

// GetMyBadges returns the caller's awarded badges
func GetMyBadges(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	var awarded []models.UserBadge
	if err := database.Database.Db.Where("user_id = ?", userId).Preload("Badge").Order("awarded_at DESC").Find(&awarded).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	badges := make([]fiber.Map, 0, len(awarded))
	for _, ub := range awarded {
		badges = append(badges, fiber.Map{
			"badgeId":         ub.BadgeID,
			"name":            ub.Badge.Name,
			"description":     ub.Badge.Description,
			"imageUrl":        ub.Badge.ImageURL,
			"tokenId":         ub.TokenID,
			"transactionHash": ub.TransactionHash,
			"awardedAt":       ub.AwardedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched!", fiber.Map{
		"badges": badges,
	})
}

// GetBadges lists all available badges (public)
func GetBadges(c *fiber.Ctx) error {
	var badges []models.Badge
	if err := database.Database.Db.Where("is_deleted = false").Order("created_at DESC").Find(&badges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched!", fiber.Map{
		"badges": badges,
	})
}

// AdminCreateBadge defines a new badge (Admin only)
func AdminCreateBadge(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedBadge").(*struct {
		Name               string `json:"name"`
		Description        string `json:"description"`
		ImageURL           string `json:"imageUrl"`
		NFTContractAddress string `json:"nftContractAddress"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.NFTContractAddress != "" && !utils.IsValidAddress(reqData.NFTContractAddress) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid contract address!", nil)
	}

	badge := models.Badge{
		Name:               reqData.Name,
		Description:        reqData.Description,
		ImageURL:           reqData.ImageURL,
		NFTContractAddress: reqData.NFTContractAddress,
	}
	if err := database.Database.Db.Create(&badge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create badge!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Badge created!", badge)
}

// AdminUpdateBadge edits a badge definition (Admin only)
func AdminUpdateBadge(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	badgeId, err := c.ParamsInt("id")
	if err != nil || badgeId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid badge id!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	var badge models.Badge
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", badgeId).First(&badge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Badge not found!", nil)
	}

	reqData, ok := c.Locals("validatedBadgeUpdate").(*struct {
		Name               string `json:"name"`
		Description        string `json:"description"`
		ImageURL           string `json:"imageUrl"`
		NFTContractAddress string `json:"nftContractAddress"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.NFTContractAddress != "" && !utils.IsValidAddress(reqData.NFTContractAddress) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid contract address!", nil)
	}

	if reqData.Name != "" {
		badge.Name = reqData.Name
	}
	if reqData.Description != "" {
		badge.Description = reqData.Description
	}
	if reqData.ImageURL != "" {
		badge.ImageURL = reqData.ImageURL
	}
	if reqData.NFTContractAddress != "" {
		badge.NFTContractAddress = reqData.NFTContractAddress
	}

	if err := database.Database.Db.Save(&badge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update badge!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge updated!", badge)
}

// AdminDeleteBadge soft-deletes a badge definition (Admin only)
func AdminDeleteBadge(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	badgeId, err := c.ParamsInt("id")
	if err != nil || badgeId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid badge id!", nil)
	}

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	res := database.Database.Db.Model(&models.Badge{}).
		Where("id = ? AND is_deleted = false", badgeId).
		Update("is_deleted", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete badge!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Badge not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge deleted!", nil)
}

// AdminMintBadge mints a badge NFT to a user's wallet and records the
// award. All local preconditions are checked before the first network
// call, and the award row is only written after the transaction is
// confirmed on chain.
func AdminMintBadge(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var admin models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role = ?", userId, "ADMIN").First(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Admin role required.", nil)
	}

	reqData, ok := c.Locals("validatedMintBadge").(*struct {
		UserID  uint `json:"userId"`
		BadgeID uint `json:"badgeId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if minter == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Minting is not configured!", nil)
	}

	db := database.Database.Db

	var targetUser models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&targetUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var badge models.Badge
	if err := db.Where("id = ? AND is_deleted = false", reqData.BadgeID).First(&badge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Badge not found!", nil)
	}

	if badge.NFTContractAddress == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Badge has no NFT contract configured!", nil)
	}
	if targetUser.WalletAddress == "" || !utils.IsValidAddress(targetUser.WalletAddress) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User has no valid wallet address!", nil)
	}

	var existing models.UserBadge
	err := db.Where("user_id = ? AND badge_id = ?", reqData.UserID, reqData.BadgeID).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already holds this badge!", fiber.Map{
			"transactionHash": existing.TransactionHash,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check existing badge!", nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(config.AppConfig.ExternalTimeoutS)*time.Second)
	defer cancel()

	reference := fmt.Sprintf("badge:%d:user:%d", reqData.BadgeID, reqData.UserID)
	result, err := minter.Mint(ctx, badge.NFTContractAddress, targetUser.WalletAddress, reference)
	if err != nil {
		log.Printf("[MINTER] mint of badge %d for user %d failed: %v", reqData.BadgeID, reqData.UserID, err)
		switch {
		case errors.Is(err, utils.ErrInvalidAddress):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User has no valid wallet address!", nil)
		case errors.Is(err, utils.ErrInvalidContract), errors.Is(err, utils.ErrContractNotDeployed):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Badge contract is not usable!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Minting failed. No badge was recorded.", nil)
		}
	}

	award := models.UserBadge{
		UserID:          reqData.UserID,
		BadgeID:         reqData.BadgeID,
		TokenID:         result.TokenID,
		TransactionHash: result.TxHash,
		AwardedAt:       time.Now(),
	}
	if err := db.Create(&award).Error; err != nil {
		// the mint went through; surface the hash so the award can be
		// recorded manually
		log.Printf("[MINTER] badge %d minted for user %d (tx %s) but local record failed: %v",
			reqData.BadgeID, reqData.UserID, result.TxHash, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false,
			"Badge minted on chain but recording failed. Manual follow-up required!", fiber.Map{
				"transactionHash": result.TxHash,
			})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge minted!", fiber.Map{
		"userId":          reqData.UserID,
		"badgeId":         reqData.BadgeID,
		"tokenId":         result.TokenID,
		"transactionHash": result.TxHash,
		"gasUsed":         result.GasUsed,
	})
}
