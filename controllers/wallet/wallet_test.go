package walletController

import (
	"errors"
	"testing"

	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.TokenType{},
		&models.UserWallet{},
		&models.Transaction{},
	))
	return db
}

func TestCreditCreatesWalletRow(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Credit(db, 1, 1, 50))

	balance, err := GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)
}

func TestCreditAccumulates(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Credit(db, 1, 1, 50))
	require.NoError(t, Credit(db, 1, 1, 25))

	balance, err := GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(75), balance)

	// only one row per (user, token type)
	var count int64
	db.Model(&models.UserWallet{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)

	assert.ErrorIs(t, Credit(db, 1, 1, 0), ErrInvalidAmount)
	assert.ErrorIs(t, Credit(db, 1, 1, -10), ErrInvalidAmount)
}

func TestGetBalanceMissingRowIsZero(t *testing.T) {
	db := setupTestDB(t)

	balance, err := GetBalance(db, 99, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestDebitReducesBalance(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Credit(db, 1, 1, 100))
	require.NoError(t, Debit(db, 1, 1, 40))

	balance, err := GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(60), balance)
}

func TestDebitInsufficientLeavesBalanceUnchanged(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Credit(db, 1, 1, 30))

	err := Debit(db, 1, 1, 100)
	var insufficient *InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(30), insufficient.Have)
	assert.Equal(t, int64(100), insufficient.Need)

	balance, err := GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)
}

func TestDebitMissingWalletIsInsufficient(t *testing.T) {
	db := setupTestDB(t)

	err := Debit(db, 7, 1, 10)
	var insufficient *InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(0), insufficient.Have)
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)

	assert.ErrorIs(t, Debit(db, 1, 1, 0), ErrInvalidAmount)
	assert.ErrorIs(t, Debit(db, 1, 1, -5), ErrInvalidAmount)
}

func TestDebitExactBalanceToZero(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Credit(db, 1, 1, 100))
	require.NoError(t, Debit(db, 1, 1, 100))

	balance, err := GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestGrantTokensWritesAuditRow(t *testing.T) {
	db := setupTestDB(t)

	grant, err := GrantTokens(db, 9, 1, 1, 200, "welcome bonus")
	require.NoError(t, err)
	assert.NotZero(t, grant.ID)
	assert.Equal(t, uint(9), grant.AdminID)
	assert.Equal(t, "welcome bonus", grant.Reason)

	balance, err := GetBalance(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGrantTokensRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)

	_, err := GrantTokens(db, 9, 1, 1, 0, "nope")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
