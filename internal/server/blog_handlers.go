package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBlogRequest represents the payload to submit a new post
type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommentRequest represents the payload for a new comment
type CommentRequest struct {
	Content string `json:"content"`
}

// CreateBlog handles the creation of a new blog post. The post enters the
// moderation queue in pending status and is not publicly visible until
// approved.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	caller, err := s.callerContext(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.lifecycle.Create(c.UserContext(), service.CreatePostInput{
		Caller:  caller,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListBlogs returns the public feed: published, non-hidden posts.
// Query parameters: q (substring search), page, limit, trending.
func (s *Server) ListBlogs(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	callerID, _ := s.optionalUserID(c)

	posts, err := s.listing.ListPublic(c.UserContext(), service.PublicListInput{
		Query:    c.Query("q"),
		Page:     p.Page,
		PageSize: p.Limit,
		Trending: c.QueryBool("trending", false),
		CallerID: callerID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"blogs": posts,
		"page":  p.Page,
		"limit": p.Limit,
	})
}

// GetBlogBySlug returns one published post by slug and counts the view.
func (s *Server) GetBlogBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Slug is required"))
	}

	callerID, _ := s.optionalUserID(c)

	post, err := s.listing.GetBySlug(c.UserContext(), slug, callerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// MyBlogs returns all posts written by the caller, in every status.
func (s *Server) MyBlogs(c *fiber.Ctx) error {
	caller, err := s.callerContext(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	p := parsePagination(c, 20)
	posts, err := s.listing.ListMine(c.UserContext(), caller, p.Page, p.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"blogs": posts,
		"page":  p.Page,
		"limit": p.Limit,
	})
}

// DeleteMyBlog lets an author delete their own post, comments and likes
// included.
func (s *Server) DeleteMyBlog(c *fiber.Ctx) error {
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

	if err := s.lifecycle.DeleteAsAuthor(c.UserContext(), caller, id); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikeBlog toggles the caller's like on a post and returns the new state.
func (s *Server) LikeBlog(c *fiber.Ctx) error {
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

	result, err := s.engagement.ToggleLike(c.UserContext(), caller, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(result)
}

// CommentBlog appends a comment to a post and returns the refreshed post.
func (s *Server) CommentBlog(c *fiber.Ctx) error {
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

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.engagement.AddComment(c.UserContext(), caller, id, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}
