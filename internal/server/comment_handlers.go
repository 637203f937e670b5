package server

import (
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /api/posts/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := postID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

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

	comments, err := s.posts.AddComment(c.Context(), userID, id, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comments)
}

// RemoveComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) RemoveComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := postID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	commentID, perr := c.ParamsInt("commentId")
	if perr != nil || commentID <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment does not exist"))
	}

	comments, err := s.posts.RemoveComment(c.Context(), userID, id, uint(commentID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comments)
}
