package server

import (
	"errors"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// experiencePayload is the wire shape of one experience entry.
type experiencePayload struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// educationPayload is the wire shape of one education entry.
type educationPayload struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// respondProfileError surfaces profile not-found as 400, per the API
// contract; everything else falls through to the default mapping.
func respondProfileError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}
	return respondServiceError(c, err)
}

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profiles.GetByUserID(c.Context(), userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewNotFoundError("There is no profile for this user"))
		}
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profiles
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Company        string             `json:"company"`
		Website        string             `json:"website"`
		Location       string             `json:"location"`
		Status         string             `json:"status"`
		Bio            string             `json:"bio"`
		GithubUsername string             `json:"github_username"`
		Skills         models.SkillList   `json:"skills"`
		Social         models.SocialLinks `json:"social"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.ProfileUpsert(req.Status, req.Skills); len(errs) > 0 {
		return models.RespondWithValidationErrors(c, errs)
	}

	profile, err := s.profiles.Upsert(c.Context(), userID, service.UpsertProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Social:         req.Social,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// ListProfiles handles GET /api/profiles (public)
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profiles.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profiles)
}

// GetProfileByAccount handles GET /api/profiles/:accountId (public)
func (s *Server) GetProfileByAccount(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("accountId")
	if err != nil || accountID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("Profile not found"))
	}

	profile, err := s.profiles.GetByUserID(c.Context(), uint(accountID))
	if err != nil {
		return respondProfileError(c, err)
	}

	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profiles: removes the caller's profile
// and account. The caller's posts survive with their author snapshot.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.users.DeleteAccount(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "Account deleted"})
}

// AddExperience handles PUT /api/profiles/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req experiencePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Experience(req.Title, req.Company, req.From); len(errs) > 0 {
		return models.RespondWithValidationErrors(c, errs)
	}

	profile, err := s.profiles.AddExperience(c.Context(), userID, service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondProfileError(c, err)
	}

	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profiles/experience/:id
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	entryID, err := c.ParamsInt("id")
	if err != nil || entryID <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Experience entry not found"))
	}

	if err := s.profiles.RemoveExperience(c.Context(), userID, uint(entryID)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "Experience removed"})
}

// AddEducation handles PUT /api/profiles/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req educationPayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Education(req.School, req.Degree, req.FieldOfStudy, req.From); len(errs) > 0 {
		return models.RespondWithValidationErrors(c, errs)
	}

	profile, err := s.profiles.AddEducation(c.Context(), userID, service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return respondProfileError(c, err)
	}

	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profiles/education/:id
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	entryID, err := c.ParamsInt("id")
	if err != nil || entryID <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Education entry not found"))
	}

	if err := s.profiles.RemoveEducation(c.Context(), userID, uint(entryID)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "Education removed"})
}
