package repository

import (
	"context"

	"ripple/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository reads viewer-relative profile projections. Every method
// is a single query: fetching the user row and checking the follow edge in
// two round-trips would leave a window where the edge changes in between.
type ProfileRepository interface {
	ByUsername(ctx context.Context, viewer *uuid.UUID, username string) (*models.Profile, error)
	List(ctx context.Context, viewer *uuid.UUID) ([]models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// followingSelect computes the viewer-relative flag in-row. A nil viewer
// binds SQL NULL, so the EXISTS collapses to false for anonymous reads.
const followingSelect = `users.username, users.bio, users.image,
EXISTS(
	SELECT 1 FROM follows
	WHERE follows.followed_id = users.id AND follows.follower_id = ?
) AS following`

func (r *profileRepository) ByUsername(ctx context.Context, viewer *uuid.UUID, username string) (*models.Profile, error) {
	var profile models.Profile
	result := r.db.WithContext(ctx).
		Raw("SELECT "+followingSelect+" FROM users WHERE users.username = ?", viewer, username).
		Scan(&profile)
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Profile", username)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, viewer *uuid.UUID) ([]models.Profile, error) {
	query := "SELECT " + followingSelect + " FROM users"
	args := []interface{}{viewer}
	if viewer != nil {
		// A viewer never sees their own row in the listing.
		query += " WHERE users.id <> ?"
		args = append(args, *viewer)
	}
	query += " ORDER BY users.username"

	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
