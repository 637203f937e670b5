package server

import (
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// postID parses the :id route parameter. A malformed or non-positive ID is
// indistinguishable from an absent post.
func postID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError("Post not found")
	}
	return uint(id), nil
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.PostText(req.Text); len(errs) > 0 {
		return models.RespondWithValidationErrors(c, errs)
	}

	post, err := s.posts.Create(c.Context(), userID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.posts.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	post, err := s.posts.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := postID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if err := s.posts.Delete(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := postID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	likes, err := s.posts.Like(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/:id/unlike
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := postID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	likes, err := s.posts.Unlike(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(likes)
}
