package seed

import (
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.ApplySchema(db))
	return db
}

func TestSeedCreatesUsersAndMesh(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 10, FollowsPerUser: 3}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 10, userCount)

	var edgeCount int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edgeCount).Error)
	assert.Positive(t, edgeCount)

	// No self-edges ever.
	var selfEdges int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = followed_id").
		Count(&selfEdges).Error)
	assert.Zero(t, selfEdges)
}

func TestSeededUsersCanLogIn(t *testing.T) {
	db := setupSeedTestDB(t)
	factory, err := NewFactory(db)
	require.NoError(t, err)

	user, err := factory.CreateUser()
	require.NoError(t, err)
	assert.NotEmpty(t, user.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(DefaultPassword)))
}

func TestSeedCleanRemovesExistingData(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 5, FollowsPerUser: 2}))
	require.NoError(t, Seed(db, Options{NumUsers: 3, FollowsPerUser: 1, ShouldClean: true}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 3, userCount)
}

func TestCreateFollowIsIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)
	factory, err := NewFactory(db)
	require.NoError(t, err)

	alice, err := factory.CreateUser()
	require.NoError(t, err)
	bob, err := factory.CreateUser()
	require.NoError(t, err)

	require.NoError(t, factory.CreateFollow(alice, bob))
	require.NoError(t, factory.CreateFollow(alice, bob))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Self-follow is silently skipped, never attempted against the DB.
	require.NoError(t, factory.CreateFollow(alice, alice))
}
