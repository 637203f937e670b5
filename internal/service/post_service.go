package service

import (
	"context"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// PostService owns the post feed: creation with author snapshots, ownership-
// checked deletion, and the likes/comments sub-lists with their invariants.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// Create stores a post, snapshotting the author's current name and avatar.
func (s *PostService) Create(ctx context.Context, userID uint, text string) (*models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// Get returns one post by ID.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes a post. Only the post's owning account may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return models.NewForbiddenError()
	}

	return s.postRepo.Delete(ctx, postID)
}

// Like records a like. The at-most-one-like-per-account invariant is enforced
// here with an explicit lookup before insertion; the DB unique index is only
// a backstop. Returns the updated likes list.
func (s *PostService) Like(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.HasLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, models.NewValidationError("Post already liked")
	}

	if err := s.postRepo.AddLike(ctx, &models.Like{PostID: postID, UserID: userID}); err != nil {
		return nil, err
	}
	return s.postRepo.ListLikes(ctx, postID)
}

// Unlike removes the caller's like, failing when none exists. Returns the
// updated likes list.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.postRepo.RemoveLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewValidationError("Post has not yet been liked")
	}
	return s.postRepo.ListLikes(ctx, postID)
}

// AddComment stores a comment with the commenter's display snapshot and
// returns the updated comments list, newest first.
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, text string) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.postRepo.ListComments(ctx, postID)
}

// RemoveComment deletes a comment. Ownership is the comment's own account
// reference, independent of who owns the post. Returns the updated list.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.postRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, models.NewForbiddenError()
	}

	if _, err := s.postRepo.DeleteComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	return s.postRepo.ListComments(ctx, postID)
}
