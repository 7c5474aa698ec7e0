package authController

import (
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
		&models.User{},
		&models.UserWallet{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Dana", Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestBlockUserExcludesFromActiveQueries(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "dana@example.com")

	require.NoError(t, SetUserBlocked(db, user.ID, true))

	// the filter every authenticated handler and the login query use
	var active models.User
	err := db.Where("id = ? AND is_deleted = ?", user.ID, false).First(&active).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = db.Where("email = ? AND is_deleted = ?", user.Email, false).First(&active).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUnblockRestoresUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "dana@example.com")

	require.NoError(t, SetUserBlocked(db, user.ID, true))
	require.NoError(t, SetUserBlocked(db, user.ID, false))

	var active models.User
	require.NoError(t, db.Where("id = ? AND is_deleted = ?", user.ID, false).First(&active).Error)
	assert.Equal(t, user.Email, active.Email)
}

func TestBlockUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	assert.ErrorIs(t, SetUserBlocked(db, 999, true), ErrUserNotFound)
}

func TestBlockTwiceFailsSecondTime(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "dana@example.com")

	require.NoError(t, SetUserBlocked(db, user.ID, true))
	assert.ErrorIs(t, SetUserBlocked(db, user.ID, true), ErrUserNotFound)

	// unblocking an active user fails the same way
	other := seedUser(t, db, "eli@example.com")
	assert.ErrorIs(t, SetUserBlocked(db, other.ID, false), ErrUserNotFound)
}

func TestBlockedUserStaysListed(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "dana@example.com")
	seedUser(t, db, "eli@example.com")

	require.NoError(t, SetUserBlocked(db, user.ID, true))

	// the admin list must keep showing blocked accounts so they can be
	// unblocked
	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	assert.Len(t, users, 2)

	var blocked models.User
	require.NoError(t, db.First(&blocked, user.ID).Error)
	assert.True(t, blocked.IsDeleted)
}
