package service

import (
	"context"
	"strings"

	"vibeshare/internal/models"
	"vibeshare/internal/repository"
)

// LikeResult is the response of a like toggle: a human-readable outcome and
// the post's new like count, read from the same transaction that changed it.
type LikeResult struct {
	Message   string `json:"message"`
	LikeCount int    `json:"likeCount"`
}

// EngagementService handles likes and comments on posts.
type EngagementService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(userRepo repository.UserRepository, postRepo repository.PostRepository, likeRepo repository.LikeRepository, commentRepo repository.CommentRepository) *EngagementService {
	return &EngagementService{userRepo: userRepo, postRepo: postRepo, likeRepo: likeRepo, commentRepo: commentRepo}
}

// ToggleLike flips the caller's like on the post. Two consecutive calls
// return the post to its original state.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	liked, likeCount, err := s.likeRepo.Toggle(ctx, userID, user.Username, postID)
	if err != nil {
		return nil, err
	}

	msg := "Post unliked"
	if liked {
		msg = "Post liked"
	}
	return &LikeResult{Message: msg, LikeCount: likeCount}, nil
}

const maxCommentLen = 1000

// AddComment appends a comment to the post and returns it with the author
// loaded.
func (s *EngagementService) AddComment(ctx context.Context, userID, postID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = *user
	return comment, nil
}

// PostLikes pairs the post's like counter with the like rows behind it.
type PostLikes struct {
	LikeCount int64         `json:"likeCount"`
	Likes     []models.Like `json:"likes"`
}

// Likes returns the post's like count and rows, oldest first.
func (s *EngagementService) Likes(ctx context.Context, postID uint) (*PostLikes, error) {
	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &PostLikes{LikeCount: count, Likes: likes}, nil
}
