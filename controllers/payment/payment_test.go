package paymentController

import (
	"errors"
	"fmt"
	"testing"

	"learnhub/config"
	walletController "learnhub/controllers/wallet"
	"learnhub/models"
	"learnhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubCheckout is an in-memory payment provider
type stubCheckout struct {
	sessions map[string]*utils.CheckoutSession
	created  []utils.CreateCheckoutParams
}

func newStubCheckout() *stubCheckout {
	return &stubCheckout{sessions: make(map[string]*utils.CheckoutSession)}
}

func (s *stubCheckout) CreateSession(params utils.CreateCheckoutParams) (*utils.CheckoutSession, error) {
	s.created = append(s.created, params)
	session := &utils.CheckoutSession{
		ID:            fmt.Sprintf("cs_test_%d", len(s.created)),
		URL:           "https://checkout.example.com/pay",
		PaymentStatus: "unpaid",
		AmountTotal:   params.UnitAmount,
		Metadata:      params.Metadata,
	}
	s.sessions[session.ID] = session
	return session, nil
}

func (s *stubCheckout) RetrieveSession(sessionID string) (*utils.CheckoutSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return session, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		AppBaseURL: "http://localhost:5173",
		Currency:   "aud",
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.TokenType{},
		&models.UserWallet{},
		&models.PaymentSession{},
	))

	require.NoError(t, db.Create(&models.TokenType{
		Name:           "Learning Tokens",
		ConversionRate: 2.0,
		IsActive:       true,
	}).Error)

	return db
}

func TestCreateIntentComputesTokensFromRate(t *testing.T) {
	db := setupTestDB(t)
	stub := newStubCheckout()

	record, url, err := CreateIntent(db, stub, 1, 50, 1)
	require.NoError(t, err)

	// 50 paid at 2 tokens per unit
	assert.Equal(t, int64(100), record.Tokens)
	assert.Equal(t, "https://checkout.example.com/pay", url)
	assert.Equal(t, models.PaymentSessionCreated, record.Status)

	require.Len(t, stub.created, 1)
	params := stub.created[0]
	assert.Equal(t, int64(5000), params.UnitAmount) // cents
	assert.Equal(t, "aud", params.Currency)
	assert.Equal(t, "1", params.Metadata["user_id"])
	assert.Equal(t, "100", params.Metadata["tokens"])
	assert.Contains(t, params.SuccessURL, "{CHECKOUT_SESSION_ID}")
}

func TestCreateIntentRoundsTokens(t *testing.T) {
	db := setupTestDB(t)
	stub := newStubCheckout()

	// 10.25 * 2.0 = 20.5 rounds to 21
	record, _, err := CreateIntent(db, stub, 1, 10.25, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(21), record.Tokens)
}

func TestCreateIntentUnknownTokenType(t *testing.T) {
	db := setupTestDB(t)
	stub := newStubCheckout()

	_, _, err := CreateIntent(db, stub, 1, 50, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, stub.created)
}

func TestVerifyCreditsWalletOnce(t *testing.T) {
	db := setupTestDB(t)
	stub := newStubCheckout()

	record, _, err := CreateIntent(db, stub, 1, 50, 1)
	require.NoError(t, err)

	stub.sessions[record.SessionID].PaymentStatus = "paid"

	result, err := VerifySession(db, stub, 1, record.SessionID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyProcessed)
	assert.Equal(t, int64(100), result.Tokens)

	balance, err := walletController.GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	// replaying the same session id must not credit again
	result, err = VerifySession(db, stub, 1, record.SessionID)
	require.NoError(t, err)
	assert.True(t, result.AlreadyProcessed)
	assert.Equal(t, int64(100), result.Tokens)

	balance, err = walletController.GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestVerifyUnpaidSession(t *testing.T) {
	db := setupTestDB(t)
	stub := newStubCheckout()

	record, _, err := CreateIntent(db, stub, 1, 50, 1)
	require.NoError(t, err)

	_, err = VerifySession(db, stub, 1, record.SessionID)
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)

	balance, err := walletController.GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestVerifyRejectsOtherUsersSession(t *testing.T) {
	db := setupTestDB(t)
	stub := newStubCheckout()

	record, _, err := CreateIntent(db, stub, 1, 50, 1)
	require.NoError(t, err)

	stub.sessions[record.SessionID].PaymentStatus = "paid"

	_, err = VerifySession(db, stub, 2, record.SessionID)
	assert.ErrorIs(t, err, ErrUserMismatch)

	balance, err := walletController.GetBalance(db, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestVerifyRejectsUntrackedSession(t *testing.T) {
	db := setupTestDB(t)
	stub := newStubCheckout()

	// a paid session the local table never saw, with plausible metadata
	stub.sessions["cs_orphan"] = &utils.CheckoutSession{
		ID:            "cs_orphan",
		PaymentStatus: "paid",
		AmountTotal:   2500,
		Metadata: map[string]string{
			"user_id":       "1",
			"tokens":        "50",
			"token_type_id": "1",
		},
	}

	_, err := VerifySession(db, stub, 1, "cs_orphan")
	assert.ErrorIs(t, err, ErrUnknownSession)

	// nothing credited, nothing recorded
	balance, err := walletController.GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	var count int64
	db.Model(&models.PaymentSession{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
