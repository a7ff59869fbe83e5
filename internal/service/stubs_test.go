package service

import (
	"context"
	"errors"
	"testing"

	"vibeshare/internal/models"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	searchFn        func(context.Context, string, int, int) ([]models.User, error)
	listFn          func(context.Context, int, int) ([]models.User, error)
	statsFn         func(context.Context, uint) (*models.UserStats, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	return s.statsFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		searchFn:        func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		statsFn:         func(context.Context, uint) (*models.UserStats, error) { return &models.UserStats{}, nil },
	}
}

type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(context.Context, uint) (*models.Post, error)
	listFn              func(context.Context, int, int) ([]*models.Post, error)
	listByUserIDFn      func(context.Context, uint, int, int) ([]*models.Post, error)
	listFollowingFeedFn func(context.Context, uint, int, int) ([]*models.Post, error)
	deleteFn            func(context.Context, uint) error
	deleteByUserIDFn    func(context.Context, uint) error
	countLikesFn        func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByUserIDFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) ListFollowingFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listFollowingFeedFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}
func (s *postRepoStub) CountLikes(ctx context.Context, postID uint) (int64, error) {
	return s.countLikesFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:            func(context.Context, *models.Post) error { return nil },
		getByIDFn:           func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:              func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		listByUserIDFn:      func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		listFollowingFeedFn: func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		deleteFn:            func(context.Context, uint) error { return nil },
		deleteByUserIDFn:    func(context.Context, uint) error { return nil },
		countLikesFn:        func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type likeRepoStub struct {
	toggleFn         func(context.Context, uint, string, uint) (bool, int, error)
	listByPostIDFn   func(context.Context, uint) ([]models.Like, error)
	deleteByUserIDFn func(context.Context, uint) error
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID uint, username string, postID uint) (bool, int, error) {
	return s.toggleFn(ctx, userID, username, postID)
}
func (s *likeRepoStub) ListByPostID(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.listByPostIDFn(ctx, postID)
}
func (s *likeRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn:         func(context.Context, uint, string, uint) (bool, int, error) { return true, 1, nil },
		listByPostIDFn:   func(context.Context, uint) ([]models.Like, error) { return nil, nil },
		deleteByUserIDFn: func(context.Context, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn         func(context.Context, *models.Comment) error
	listByPostIDFn   func(context.Context, uint) ([]models.Comment, error)
	deleteByUserIDFn func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostIDFn(ctx, postID)
}
func (s *commentRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:         func(context.Context, *models.Comment) error { return nil },
		listByPostIDFn:   func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
		deleteByUserIDFn: func(context.Context, uint) error { return nil },
	}
}

type followRepoStub struct {
	followFn         func(context.Context, uint, uint) error
	unfollowFn       func(context.Context, uint, uint) error
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	listFollowersFn  func(context.Context, uint) ([]models.UserSummary, error)
	listFollowingFn  func(context.Context, uint) ([]models.UserSummary, error)
	deleteByUserIDFn func(context.Context, uint) error
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.listFollowingFn(ctx, userID)
}
func (s *followRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:         func(context.Context, uint, uint) error { return nil },
		unfollowFn:       func(context.Context, uint, uint) error { return nil },
		isFollowingFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		listFollowersFn:  func(context.Context, uint) ([]models.UserSummary, error) { return nil, nil },
		listFollowingFn:  func(context.Context, uint) ([]models.UserSummary, error) { return nil, nil },
		deleteByUserIDFn: func(context.Context, uint) error { return nil },
	}
}

type favoriteRepoStub struct {
	addFn            func(context.Context, uint, uint) error
	removeFn         func(context.Context, uint, uint) error
	isFavoriteFn     func(context.Context, uint, uint) (bool, error)
	listPostIDsFn    func(context.Context, uint) ([]uint, error)
	listPostsFn      func(context.Context, uint) ([]*models.Post, error)
	deleteByUserIDFn func(context.Context, uint) error
}

func (s *favoriteRepoStub) Add(ctx context.Context, userID, postID uint) error {
	return s.addFn(ctx, userID, postID)
}
func (s *favoriteRepoStub) Remove(ctx context.Context, userID, postID uint) error {
	return s.removeFn(ctx, userID, postID)
}
func (s *favoriteRepoStub) IsFavorite(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isFavoriteFn(ctx, userID, postID)
}
func (s *favoriteRepoStub) ListPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.listPostIDsFn(ctx, userID)
}
func (s *favoriteRepoStub) ListPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listPostsFn(ctx, userID)
}
func (s *favoriteRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		addFn:            func(context.Context, uint, uint) error { return nil },
		removeFn:         func(context.Context, uint, uint) error { return nil },
		isFavoriteFn:     func(context.Context, uint, uint) (bool, error) { return false, nil },
		listPostIDsFn:    func(context.Context, uint) ([]uint, error) { return nil, nil },
		listPostsFn:      func(context.Context, uint) ([]*models.Post, error) { return nil, nil },
		deleteByUserIDFn: func(context.Context, uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}
