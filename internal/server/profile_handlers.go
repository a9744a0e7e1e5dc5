package server

import (
	"strings"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// viewerID returns the authenticated viewer's ID, or nil for anonymous
// requests. A nil viewer makes every following flag false.
func viewerID(c *fiber.Ctx) *uuid.UUID {
	identity, ok := identityFrom(c)
	if !ok {
		return nil
	}
	id := identity.UserID
	return &id
}

// ListProfiles handles GET /api/profiles
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListProfiles(c.UserContext(), viewerID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"profiles": profiles})
}

// GetProfile handles GET /api/profiles/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	profile, err := s.profileService.GetProfile(c.UserContext(), viewerID(c), username)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"profile": profile})
}

// FollowUser handles POST /api/profiles/:username/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	identity, ok := identityFrom(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	profile, err := s.followService.Follow(c.UserContext(), identity.UserID, username)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"profile": profile})
}

// UnfollowUser handles DELETE /api/profiles/:username/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	identity, ok := identityFrom(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	profile, err := s.followService.Unfollow(c.UserContext(), identity.UserID, username)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"profile": profile})
}
