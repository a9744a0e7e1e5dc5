package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/google/uuid"
)

// ProfileService assembles viewer-relative profile projections.
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetProfile looks up a single profile. viewer may be nil (anonymous), in
// which case following is always false.
func (s *ProfileService) GetProfile(ctx context.Context, viewer *uuid.UUID, username string) (*models.Profile, error) {
	return s.profiles.ByUsername(ctx, viewer, username)
}

// ListProfiles returns all profiles. When a viewer is present their own row
// is excluded.
func (s *ProfileService) ListProfiles(ctx context.Context, viewer *uuid.UUID) ([]models.Profile, error) {
	return s.profiles.List(ctx, viewer)
}
