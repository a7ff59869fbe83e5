package server

import (
	"vibeshare/internal/models"
	"vibeshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllPosts handles GET /posts/getAllPosts
// @Summary Global feed
// @Description Get all posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts/getAllPosts [get]
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	p := parseFeedPagination(c)
	posts, err := s.postService.Feed(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(posts)
}

// GetFollowingPosts handles GET /posts/following
// @Summary Following feed
// @Description Get the newest posts from followed users
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts/following [get]
func (s *Server) GetFollowingPosts(c *fiber.Ctx) error {
	p := parseFeedPagination(c)
	posts, err := s.postService.FollowingFeed(c.UserContext(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(posts)
}

// GetUserPosts handles GET /posts/user?username=...
// @Summary A user's posts
// @Tags posts
// @Produce json
// @Param username query string true "Username"
// @Success 200 {array} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/user [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username query parameter is required"))
	}
	p := parseFeedPagination(c)
	posts, err := s.postService.PostsByUsername(c.UserContext(), username, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /posts/createPost
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body service.CreatePostInput true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/createPost [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UploadMedia handles POST /posts/upload (multipart form, field "file")
// @Summary Upload a media file
// @Tags posts
// @Accept mpfd
// @Produce json
// @Success 200 {object} service.UploadResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /posts/upload [post]
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	if s.mediaService == nil {
		return models.RespondWithError(c, fiber.StatusBadGateway,
			models.NewUpstreamError("media host", nil))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("file is required"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer src.Close()

	result, err := s.mediaService.Upload(c.UserContext(), src, file.Size,
		file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(result)
}

// ToggleLike handles POST /posts/like
// @Summary Toggle a like
// @Description Like the post if not liked, unlike it otherwise
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{postId=int} true "Post to toggle"
// @Success 200 {object} service.LikeResult
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}

	result, err := s.engagementService.ToggleLike(c.UserContext(), currentUserID(c), req.PostID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(result)
}

// CreateComment handles POST /posts/comment
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{postId=int,text=string} true "Comment payload"
// @Success 201 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/comment [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		PostID uint   `json:"postId"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}

	comment, err := s.engagementService.AddComment(c.UserContext(), currentUserID(c), req.PostID, req.Text)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetPostLikes handles GET /posts/likes/:postId
// @Summary A post's like count and likes
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} service.PostLikes
// @Router /posts/likes/{postId} [get]
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	likes, err := s.engagementService.Likes(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(likes)
}

// GetPost handles GET /posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete own post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// GetAds handles GET /api/ads
// @Summary Advertising feed
// @Description Proxy of the third-party ad feed, cached for five minutes
// @Tags ads
// @Produce json
// @Success 200 {array} models.Ad
// @Failure 502 {object} models.ErrorResponse
// @Router /api/ads [get]
func (s *Server) GetAds(c *fiber.Ctx) error {
	ads, err := s.adService.Ads(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(ads)
}
