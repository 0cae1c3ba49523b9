package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"chronicle/internal/models"
)

// GetRelationship returns the relationship record for a username. With
// ?detail=friends|following|followers it returns only that sub-list.
func (s *Server) GetRelationship(c *fiber.Ctx) error {
	rel, err := s.relationshipService.Get(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	switch c.Query("detail") {
	case "":
		return c.JSON(rel)
	case "friends":
		return c.JSON(rel.Friends)
	case "following":
		return c.JSON(rel.Following)
	case "followers":
		return c.JSON(rel.Followers)
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown detail parameter"))
	}
}

// relationshipMutation runs one list mutation, addressed by username and
// targetUsername query parameters, and writes the uniform success or failure
// envelope. All relationship failures map to 400.
func (s *Server) relationshipMutation(c *fiber.Ctx, mutate func(ctx context.Context, username, target string) error) error {
	username := c.Query("username")
	target := c.Query("targetUsername")
	if username == "" || target == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and target username are required"))
	}
	if err := mutate(c.Context(), username, target); err != nil {
		var appErr *models.AppError
		status := fiber.StatusBadRequest
		if !errors.As(err, &appErr) {
			status = fiber.StatusInternalServerError
		}
		return models.RespondWithError(c, status, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "success"})
}

func (s *Server) Follow(c *fiber.Ctx) error {
	return s.relationshipMutation(c, s.relationshipService.Follow)
}

func (s *Server) Unfollow(c *fiber.Ctx) error {
	return s.relationshipMutation(c, s.relationshipService.Unfollow)
}

func (s *Server) AddFollower(c *fiber.Ctx) error {
	return s.relationshipMutation(c, s.relationshipService.AddFollower)
}

func (s *Server) RemoveFollower(c *fiber.Ctx) error {
	return s.relationshipMutation(c, s.relationshipService.RemoveFollower)
}

func (s *Server) AddFriend(c *fiber.Ctx) error {
	return s.relationshipMutation(c, s.relationshipService.AddFriend)
}

func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	return s.relationshipMutation(c, s.relationshipService.RemoveFriend)
}
