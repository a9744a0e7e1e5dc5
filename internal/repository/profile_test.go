package repository

import (
	"context"
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProfileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.ApplySchema(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestProfileRepository_ByUsername(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowedID: bob.ID}).Error)

	t.Run("Following flag reflects the viewer's edge", func(t *testing.T) {
		profile, err := repo.ByUsername(ctx, &alice.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", profile.Username)
		assert.True(t, profile.Following)
	})

	t.Run("Edge direction matters", func(t *testing.T) {
		profile, err := repo.ByUsername(ctx, &bob.ID, "alice")
		require.NoError(t, err)
		assert.False(t, profile.Following)
	})

	t.Run("Anonymous viewer always sees following false", func(t *testing.T) {
		profile, err := repo.ByUsername(ctx, nil, "bob")
		require.NoError(t, err)
		assert.False(t, profile.Following)
	})

	t.Run("Unknown username", func(t *testing.T) {
		_, err := repo.ByUsername(ctx, &alice.ID, "nobody")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})
}

func TestProfileRepository_List(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedUser(t, db, "carol")
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowedID: bob.ID}).Error)

	t.Run("Anonymous listing includes everyone", func(t *testing.T) {
		profiles, err := repo.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, profiles, 3)
		for _, p := range profiles {
			assert.False(t, p.Following)
		}
	})

	t.Run("Viewer's own row is excluded", func(t *testing.T) {
		profiles, err := repo.List(ctx, &alice.ID)
		require.NoError(t, err)
		require.Len(t, profiles, 2)

		names := make([]string, 0, len(profiles))
		for _, p := range profiles {
			names = append(names, p.Username)
		}
		assert.NotContains(t, names, "alice")
	})

	t.Run("Output is ordered by username", func(t *testing.T) {
		profiles, err := repo.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, profiles, 3)
		assert.Equal(t, "alice", profiles[0].Username)
		assert.Equal(t, "bob", profiles[1].Username)
		assert.Equal(t, "carol", profiles[2].Username)
	})

	t.Run("Flags are per-viewer", func(t *testing.T) {
		profiles, err := repo.List(ctx, &alice.ID)
		require.NoError(t, err)

		byName := map[string]bool{}
		for _, p := range profiles {
			byName[p.Username] = p.Following
		}
		assert.True(t, byName["bob"])
		assert.False(t, byName["carol"])
	})
}

func TestProfileRepository_EmptyDatabase(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewProfileRepository(db)

	viewer := uuid.New()
	profiles, err := repo.List(context.Background(), &viewer)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
