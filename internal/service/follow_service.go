// Package service holds the business logic composed on top of the
// repository layer.
package service

import (
	"context"
	"errors"

	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowService mutates the directed follow graph. Each operation runs in a
// single transaction covering target resolution and the edge mutation, so a
// failure between the two leaves the graph unchanged and the returned
// profile always reflects the committed state of this call.
type FollowService struct {
	db       *gorm.DB
	notifier *notifications.Notifier
}

// NewFollowService returns a new FollowService. notifier may be nil, in
// which case no events are published.
func NewFollowService(db *gorm.DB, notifier *notifications.Notifier) *FollowService {
	return &FollowService{db: db, notifier: notifier}
}

// Follow makes follower follow the user named targetUsername and returns the
// target's profile with following=true. Re-following an already-followed
// user is a no-op success. Following yourself fails Forbidden: the check
// lives in the database constraint, not here, so two concurrent requests
// cannot race past an application pre-check.
func (s *FollowService) Follow(ctx context.Context, follower uuid.UUID, targetUsername string) (*models.Profile, error) {
	var profile *models.Profile
	var created bool
	var targetID uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := resolveTarget(tx, targetUsername)
		if err != nil {
			return err
		}
		targetID = target.ID

		edge := models.Follow{FollowerID: follower, FollowedID: target.ID}
		result := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&edge)
		if result.Error != nil {
			if models.IsConstraintViolation(result.Error, models.SelfFollowConstraint) {
				observability.FollowMutations.WithLabelValues("follow", "self_follow").Inc()
				return models.NewForbiddenError("Cannot follow yourself")
			}
			observability.FollowMutations.WithLabelValues("follow", "error").Inc()
			return models.NewInternalError(result.Error)
		}
		created = result.RowsAffected > 0

		profile = models.ProfileOf(target, true)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		observability.FollowMutations.WithLabelValues("follow", "created").Inc()
		if s.notifier != nil {
			_ = s.notifier.PublishFollow(ctx, follower, targetID)
		}
	} else {
		observability.FollowMutations.WithLabelValues("follow", "noop").Inc()
	}
	return profile, nil
}

// Unfollow removes the follower→target edge if present (absent edge is a
// no-op success) and returns the target's profile with following=false.
func (s *FollowService) Unfollow(ctx context.Context, follower uuid.UUID, targetUsername string) (*models.Profile, error) {
	var profile *models.Profile
	var removed bool
	var targetID uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := resolveTarget(tx, targetUsername)
		if err != nil {
			return err
		}
		targetID = target.ID

		result := tx.
			Where("follower_id = ? AND followed_id = ?", follower, target.ID).
			Delete(&models.Follow{})
		if result.Error != nil {
			observability.FollowMutations.WithLabelValues("unfollow", "error").Inc()
			return models.NewInternalError(result.Error)
		}
		removed = result.RowsAffected > 0

		profile = models.ProfileOf(target, false)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if removed {
		observability.FollowMutations.WithLabelValues("unfollow", "removed").Inc()
		if s.notifier != nil {
			_ = s.notifier.PublishUnfollow(ctx, follower, targetID)
		}
	} else {
		observability.FollowMutations.WithLabelValues("unfollow", "noop").Inc()
	}
	return profile, nil
}

func resolveTarget(tx *gorm.DB, username string) (*models.User, error) {
	var target models.User
	if err := tx.Where("username = ?", username).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &target, nil
}
