package server

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"

	"chronicle/internal/models"
)

// errResponseWritten signals that a handler helper already wrote an error
// response and the caller should return nil.
var errResponseWritten = errors.New("response written")

// parseID reads a positive integer path parameter. On failure it writes a
// 400 response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		appErr := models.NewValidationError("Invalid " + humanizeParam(param))
		_ = models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam turns a route parameter name like "journalID" into
// "journal ID" for error messages.
func humanizeParam(param string) string {
	words := splitCamel(param)
	for i, w := range words {
		if strings.EqualFold(w, "id") {
			words[i] = "ID"
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i := 1; i < len(s); i++ {
		if unicode.IsUpper(rune(s[i])) && !unicode.IsUpper(rune(s[i-1])) {
			words = append(words, strings.ToLower(s[start:i]))
			start = i
		}
	}
	words = append(words, strings.ToLower(s[start:]))
	return words
}

// parseQueryID reads a positive integer query parameter. On failure it
// writes a 400 response and returns errResponseWritten.
func parseQueryID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Query(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		appErr := models.NewValidationError("Invalid " + humanizeParam(param))
		_ = models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage reads page/size query parameters and converts them to a
// limit/offset pair. Pages are 1-based; size is capped at 100.
func parsePage(c *fiber.Ctx, defaultSize int) (limit, offset int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.Query("size", strconv.Itoa(defaultSize)))
	if err != nil || size < 1 {
		size = defaultSize
	}
	if size > 100 {
		size = 100
	}
	return size, (page - 1) * size
}

// mapServiceError translates a service-layer error into an HTTP status.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return fiber.StatusNotFound
		case models.CodeValidation:
			return fiber.StatusBadRequest
		case models.CodeUnauthorized:
			return fiber.StatusUnauthorized
		case models.CodeConflict:
			return fiber.StatusConflict
		}
	}
	return fiber.StatusInternalServerError
}

// respondServiceError writes err with its mapped status.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, mapServiceError(err), err)
}
