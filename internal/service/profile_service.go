package service

import (
	"context"
	"strings"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// ProfileService owns profile records and their embedded experience and
// education sub-lists. Every mutation keys by the caller's own account ID, so
// cross-account profile mutation is structurally impossible.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// UpsertProfileInput carries the partial profile payload. Empty fields leave
// existing values untouched on update.
type UpsertProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	GithubUsername string
	Skills         []string
	Social         models.SocialLinks
}

// Upsert creates the caller's profile or overwrites the provided fields of an
// existing one. Social links are normalized to absolute URLs.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in UpsertProfileInput) (*models.Profile, error) {
	social := models.SocialLinks{
		Youtube:   normalizeURL(in.Social.Youtube),
		Twitter:   normalizeURL(in.Social.Twitter),
		Facebook:  normalizeURL(in.Social.Facebook),
		Linkedin:  normalizeURL(in.Social.Linkedin),
		Instagram: normalizeURL(in.Social.Instagram),
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		profile = &models.Profile{
			UserID:         userID,
			Company:        in.Company,
			Website:        normalizeURL(in.Website),
			Location:       in.Location,
			Status:         in.Status,
			Bio:            in.Bio,
			GithubUsername: in.GithubUsername,
			Skills:         in.Skills,
			Social:         social,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		cache.InvalidateProfile(ctx, userID)
		return s.profileRepo.GetByUserID(ctx, userID)
	}

	if in.Company != "" {
		profile.Company = in.Company
	}
	if in.Website != "" {
		profile.Website = normalizeURL(in.Website)
	}
	if in.Location != "" {
		profile.Location = in.Location
	}
	if in.Status != "" {
		profile.Status = in.Status
	}
	if in.Bio != "" {
		profile.Bio = in.Bio
	}
	if in.GithubUsername != "" {
		profile.GithubUsername = in.GithubUsername
	}
	if len(in.Skills) > 0 {
		profile.Skills = in.Skills
	}
	if social != (models.SocialLinks{}) {
		profile.Social = mergeSocial(profile.Social, social)
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GetByUserID returns the profile owned by the given account.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// List returns all profiles joined with their owning account's display data,
// served cache-aside from Redis.
func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := cache.CacheAside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		var err error
		profiles, err = s.profileRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// ExperienceInput is a shape-validated experience entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience prepends an experience entry to the caller's profile and
// returns the updated profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	profile, err := s.profileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveExperience deletes one experience entry from the caller's profile.
// An absent profile or absent entry fails explicitly.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) error {
	profile, err := s.profileForUpdate(ctx, userID)
	if err != nil {
		return err
	}

	removed, err := s.profileRepo.DeleteExperience(ctx, profile.ID, expID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Experience entry not found")
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

// EducationInput is a shape-validated education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// AddEducation mirrors AddExperience for education entries.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	profile, err := s.profileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveEducation mirrors RemoveExperience.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) error {
	profile, err := s.profileForUpdate(ctx, userID)
	if err != nil {
		return err
	}

	removed, err := s.profileRepo.DeleteEducation(ctx, profile.ID, eduID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Education entry not found")
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (s *ProfileService) profileForUpdate(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewNotFoundError("There is no profile for this user")
		}
		return nil, err
	}
	return profile, nil
}

// normalizeURL converts a non-empty link to canonical absolute form.
func normalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return "https://" + trimmed
	}
	return trimmed
}

// mergeSocial overwrites only the links provided in the update.
func mergeSocial(current, update models.SocialLinks) models.SocialLinks {
	if update.Youtube != "" {
		current.Youtube = update.Youtube
	}
	if update.Twitter != "" {
		current.Twitter = update.Twitter
	}
	if update.Facebook != "" {
		current.Facebook = update.Facebook
	}
	if update.Linkedin != "" {
		current.Linkedin = update.Linkedin
	}
	if update.Instagram != "" {
		current.Instagram = update.Instagram
	}
	return current
}

// isNotFound reports whether err is an AppError with the NOT_FOUND code.
func isNotFound(err error) bool {
	appErr, ok := err.(*models.AppError)
	return ok && appErr.Code == models.CodeNotFound
}
