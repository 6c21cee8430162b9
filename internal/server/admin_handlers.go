package server

import (
	"errors"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PendingBlogs lists posts awaiting moderation, newest first.
func (s *Server) PendingBlogs(c *fiber.Ctx) error {
	caller, err := s.callerContext(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	p := parsePagination(c, 20)
	posts, err := s.listing.ListPending(c.UserContext(), caller, p.Page, p.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"blogs": posts,
		"page":  p.Page,
		"limit": p.Limit,
	})
}

// moderate runs one lifecycle transition handler body. All four admin
// mutations share the same shape: parse :id, call the service, return the
// updated post.
func (s *Server) moderate(c *fiber.Ctx,
	fn func(id uint) (*models.Post, error)) error {
	id, err := s.parseID(c)
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return models.RespondWithError(c, err)
	}

	post, err := fn(id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// ApproveBlog publishes a pending or rejected post.
func (s *Server) ApproveBlog(c *fiber.Ctx) error {
	caller, err := s.callerContext(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return s.moderate(c, func(id uint) (*models.Post, error) {
		return s.lifecycle.Approve(c.UserContext(), caller, id)
	})
}

// RejectBlog marks a post as rejected, removing it from public view.
func (s *Server) RejectBlog(c *fiber.Ctx) error {
	caller, err := s.callerContext(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return s.moderate(c, func(id uint) (*models.Post, error) {
		return s.lifecycle.Reject(c.UserContext(), caller, id)
	})
}

// HideBlog toggles the hidden flag on a post. Hiding does not change the
// moderation status; unhiding a published post makes it visible again.
func (s *Server) HideBlog(c *fiber.Ctx) error {
	caller, err := s.callerContext(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return s.moderate(c, func(id uint) (*models.Post, error) {
		return s.lifecycle.Hide(c.UserContext(), caller, id)
	})
}

// AdminDeleteBlog removes any post regardless of author or status.
func (s *Server) AdminDeleteBlog(c *fiber.Ctx) error {
	caller, err := s.callerContext(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	id, err := s.parseID(c)
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return models.RespondWithError(c, err)
	}

	if err := s.lifecycle.DeleteAsAdmin(c.UserContext(), caller, id); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
