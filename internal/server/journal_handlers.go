package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/service"
)

// ListJournals returns a page of journals across all authors, newest
// first. Soft-deleted journals are excluded here and only here.
func (s *Server) ListJournals(c *fiber.Ctx) error {
	limit, offset := parsePage(c, 5)
	journals, err := s.journalService.List(c.Context(), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(journals)
}

// ListJournalsByAuthor returns a page of one author's journals, including
// soft-deleted ones.
func (s *Server) ListJournalsByAuthor(c *fiber.Ctx) error {
	limit, offset := parsePage(c, 5)
	journals, err := s.journalService.ListByAuthor(c.Context(), c.Params("username"), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(journals)
}

// FriendsFeed returns journals written by the user's friends, most
// recently updated first.
func (s *Server) FriendsFeed(c *fiber.Ctx) error {
	limit, offset := parsePage(c, 5)
	journals, err := s.journalService.FriendsFeed(c.Context(), c.Params("username"), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(journals)
}

// SearchJournals finds journals whose title or content contains the
// keywords query parameter. page and size are accepted but the result
// set is returned whole.
func (s *Server) SearchJournals(c *fiber.Ctx) error {
	keywords := strings.TrimSpace(c.Query("keywords"))
	if keywords == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing keywords parameter"))
	}
	journals, err := s.journalService.Search(c.Context(), keywords)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(journals)
}

func (s *Server) CreateJournal(c *fiber.Ctx) error {
	var in service.CreateJournalInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	journal, err := s.journalService.Create(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	middleware.Logger.InfoContext(c.Context(), "journal created",
		"journal_id", journal.ID, "username", journal.Username)
	return c.Status(fiber.StatusCreated).JSON(journal)
}

func (s *Server) UpdateJournal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var in service.UpdateJournalInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	journal, err := s.journalService.Update(c.Context(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(journal)
}

// DeleteJournal marks a journal deleted. The row stays and remains
// visible in the author's own listing.
func (s *Server) DeleteJournal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	deleted, err := s.journalService.SoftDelete(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !deleted {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Journal", c.Params("id")))
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "success"})
}

// LikeJournal appends the liker's username, identified by id and username
// query parameters. Liking twice accumulates two entries.
func (s *Server) LikeJournal(c *fiber.Ctx) error {
	id, err := parseQueryID(c, "id")
	if err != nil {
		return nil
	}
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}
	journal, err := s.journalService.Like(c.Context(), id, username)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(journal)
}

func (s *Server) UnlikeJournal(c *fiber.Ctx) error {
	id, err := parseQueryID(c, "id")
	if err != nil {
		return nil
	}
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}
	journal, err := s.journalService.Unlike(c.Context(), id, username)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(journal)
}

type commentRequest struct {
	User    models.SimpleUser `json:"simple_user"`
	Content string            `json:"content"`
}

// CommentJournal appends a comment to a journal and returns only the new
// comment, not the whole journal.
func (s *Server) CommentJournal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Content) == "" || req.User.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment user and content are required"))
	}
	comment, err := s.journalService.AddComment(c.Context(), id, req.User, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(comment)
}
