package server

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/service"
	"chronicle/internal/session"
)

// GetUserByUsername returns the public profile for a username. With
// ?details=true it returns the extended profile instead.
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	user, err := s.userService.FindByUsername(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}
	if c.Query("details") == "true" {
		return c.JSON(fiber.Map{
			"username":     user.Username,
			"display_name": user.DisplayName,
			"email":        user.Email,
			"avatar":       user.Avatar,
			"gender":       user.Gender,
			"created_days": int(time.Since(user.CreatedAt).Hours() / 24),
		})
	}
	return c.JSON(user.Simple())
}

// SearchUsers finds users by display name. A query starting with "@" is an
// exact username lookup instead and returns the single match. Both forms
// answer 404 when nothing matches.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if strings.HasPrefix(name, "@") {
		username := strings.TrimPrefix(name, "@")
		user, err := s.userService.FindByUsername(c.Context(), username)
		if err != nil {
			return respondServiceError(c, err)
		}
		if user == nil {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", username))
		}
		return c.JSON(user.Simple())
	}
	limit, offset := parsePage(c, 10)
	users, err := s.userService.SearchByDisplayName(c.Context(), name, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if len(users) == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", name))
	}
	results := make([]models.SimpleUser, 0, len(users))
	for _, u := range users {
		results = append(results, u.Simple())
	}
	return c.JSON(results)
}

// Register creates a user account plus its empty relationship record.
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	user, err := s.userService.Register(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	middleware.Logger.InfoContext(c.Context(), "user registered", "username", user.Username)
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser applies a partial profile update. The username in the path
// must match the one in the body.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var in service.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if in.Username != "" && in.Username != c.Params("username") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username in path and body do not match"))
	}
	in.Username = c.Params("username")
	user, err := s.userService.UpdateProfile(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser removes the account row. Journals and relationship records
// are left in place.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")
	deleted, err := s.userService.Delete(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !deleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}
	middleware.Logger.InfoContext(c.Context(), "user deleted", "username", username)
	return c.SendStatus(fiber.StatusNoContent)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and opens a session. The session token travels
// in an HttpOnly cookie.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	user, err := s.userService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}
	token, err := s.sessions.Create(c.Context(), user.Username)
	if err != nil {
		return respondServiceError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.Env == "production",
		MaxAge:   s.config.SessionTTLMinutes * 60,
	})
	middleware.Logger.InfoContext(c.Context(), "user logged in", "username", user.Username)
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"user":    user.Simple(),
	})
}

// Logout destroys the current session and clears the cookie. Logging out
// without a session succeeds.
func (s *Server) Logout(c *fiber.Ctx) error {
	token := c.Cookies(session.CookieName)
	if err := s.sessions.Destroy(c.Context(), token); err != nil {
		return respondServiceError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		HTTPOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(fiber.Map{"status": "success", "message": "Logged out"})
}
