package paymentController

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"learnhub/config"
	walletController "learnhub/controllers/wallet"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrPaymentNotCompleted is returned when the checkout session has
	// not been paid yet
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// ErrUserMismatch is returned when the session's recorded user does
	// not match the caller
	ErrUserMismatch = errors.New("session does not belong to this user")

	// ErrUnknownSession is returned when the session id was never
	// recorded by CreateIntent. Every legitimate session is tracked at
	// creation, so an untracked id is rejected rather than credited
	// from provider metadata alone.
	ErrUnknownSession = errors.New("unknown payment session")
)

// checkout is the payment provider client, injected at startup
var checkout utils.CheckoutClient

// Init wires the payment provider client used by the handlers
func Init(client utils.CheckoutClient) {
	checkout = client
}

// VerifyResult reports the outcome of a payment verification
type VerifyResult struct {
	Tokens           int64
	Amount           float64
	AlreadyProcessed bool
}

// CreateIntent opens a hosted checkout session for a token purchase.
// The token count is computed here from the token type's conversion
// rate and pinned in the session metadata.
func CreateIntent(db *gorm.DB, client utils.CheckoutClient, userID uint, amount float64, tokenTypeID uint) (*models.PaymentSession, string, error) {
	var tokenType models.TokenType
	if err := db.Where("id = ? AND is_deleted = false AND is_active = true", tokenTypeID).First(&tokenType).Error; err != nil {
		return nil, "", err
	}

	tokens := int64(math.Round(amount * tokenType.ConversionRate))
	reference := uuid.NewString()

	session, err := client.CreateSession(utils.CreateCheckoutParams{
		ProductName: tokenType.Name,
		Description: fmt.Sprintf("%d %s", tokens, tokenType.Name),
		UnitAmount:  int64(math.Round(amount * 100)), // provider expects cents
		Currency:    config.AppConfig.Currency,
		SuccessURL:  config.AppConfig.AppBaseURL + "/profile?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   config.AppConfig.AppBaseURL + "/buy-tokens",
		Reference:   reference,
		Metadata: map[string]string{
			"user_id":       strconv.FormatUint(uint64(userID), 10),
			"tokens":        strconv.FormatInt(tokens, 10),
			"token_type_id": strconv.FormatUint(uint64(tokenTypeID), 10),
		},
	})
	if err != nil {
		return nil, "", err
	}

	record := models.PaymentSession{
		SessionID:   session.ID,
		Reference:   reference,
		UserID:      userID,
		TokenTypeID: tokenTypeID,
		Tokens:      tokens,
		Amount:      amount,
		Status:      models.PaymentSessionCreated,
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, "", err
	}

	return &record, session.URL, nil
}

// VerifySession checks a returned checkout session and credits the
// wallet exactly once. Replaying the same session id returns the
// recorded result without touching the balance again: the credit only
// happens on the conditional status flip from created to credited.
// Session ids with no local record are rejected outright.
func VerifySession(db *gorm.DB, client utils.CheckoutClient, userID uint, sessionID string) (*VerifyResult, error) {
	session, err := client.RetrieveSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.PaymentStatus != "paid" {
		return nil, ErrPaymentNotCompleted
	}
	if session.Metadata["user_id"] != strconv.FormatUint(uint64(userID), 10) {
		return nil, ErrUserMismatch
	}

	tokens, err := strconv.ParseInt(session.Metadata["tokens"], 10, 64)
	if err != nil || tokens <= 0 {
		return nil, fmt.Errorf("session has invalid token metadata: %q", session.Metadata["tokens"])
	}
	tokenTypeID, err := strconv.ParseUint(session.Metadata["token_type_id"], 10, 64)
	if err != nil || tokenTypeID == 0 {
		return nil, fmt.Errorf("session has invalid token type metadata: %q", session.Metadata["token_type_id"])
	}
	amount := float64(session.AmountTotal) / 100

	var result VerifyResult
	err = db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&models.PaymentSession{}).
			Where("session_id = ? AND status <> ?", sessionID, models.PaymentSessionCredited).
			Updates(map[string]interface{}{
				"status":      models.PaymentSessionCredited,
				"credited_at": now,
				"tokens":      tokens,
				"amount":      amount,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var existing models.PaymentSession
			err := tx.Where("session_id = ?", sessionID).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownSession
			}
			if err != nil {
				return err
			}
			// already credited on a previous verification
			result = VerifyResult{Tokens: existing.Tokens, Amount: existing.Amount, AlreadyProcessed: true}
			return nil
		}

		result = VerifyResult{Tokens: tokens, Amount: amount}
		return walletController.Credit(tx, userID, uint(tokenTypeID), tokens)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePaymentIntent starts a token purchase for the caller
func CreatePaymentIntent(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedPaymentIntent").(*struct {
		Amount      float64 `json:"amount"`
		TokenTypeID uint    `json:"tokenTypeId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	record, url, err := CreateIntent(database.Database.Db, checkout, userId, reqData.Amount, reqData.TokenTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Token type not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create checkout session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"sessionId": record.SessionID,
		"url":       url,
		"tokens":    record.Tokens,
	})
}

// VerifyPayment confirms a completed checkout and credits the wallet
func VerifyPayment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedVerifyPayment").(*struct {
		SessionID string `json:"sessionId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := VerifySession(database.Database.Db, checkout, userId, reqData.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotCompleted):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment not completed!", nil)
		case errors.Is(err, ErrUserMismatch):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Session does not belong to this user!", nil)
		case errors.Is(err, ErrUnknownSession):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown payment session!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
		}
	}

	if !result.AlreadyProcessed {
		go utils.SendTokensPurchasedEmail(user.Email, user.Name, result.Tokens)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified!", fiber.Map{
		"tokens":           result.Tokens,
		"amount":           result.Amount,
		"alreadyProcessed": result.AlreadyProcessed,
	})
}
