// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"errors"

	"inkwell/internal/authz"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed page/limit query parameters. Page is 1-indexed.
type Pagination struct {
	Page  int
	Limit int
}

// parsePagination extracts page and limit query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}

	return Pagination{Page: page, Limit: limit}
}

// parseID extracts the :id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// callerContext builds the authorization context for the authenticated
// caller, resolving the role from the user row.
func (s *Server) callerContext(c *fiber.Ctx) (authz.Context, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return authz.Anonymous, models.NewForbiddenError("Authentication required")
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authz.Anonymous, models.NewForbiddenError("Unknown user")
		}
		return authz.Anonymous, err
	}

	role := authz.RoleUser
	if user.IsAdmin {
		role = authz.RoleAdmin
	}
	return authz.Context{UserID: user.ID, Role: role}, nil
}
