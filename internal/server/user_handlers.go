package server

import (
	"vibeshare/internal/models"
	"vibeshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchUsers handles GET /user/search?q=...
// @Summary Search users
// @Tags user
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.UserSummary
// @Router /user/search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	users, err := s.userService.SearchUsers(c.UserContext(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return c.JSON(summaries)
}

// GetAllUsers handles GET /user/all
// @Summary List users
// @Tags user
// @Produce json
// @Success 200 {array} models.UserSummary
// @Router /user/all [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.userService.ListUsers(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return c.JSON(summaries)
}

// GetMyProfile handles GET /user/profile
// @Summary Own profile
// @Tags user
// @Produce json
// @Success 200 {object} models.User
// @Router /user/profile [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /user/:id
// @Summary A user's profile
// @Tags user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /user/profile
// @Summary Update own profile
// @Tags user
// @Accept json
// @Produce json
// @Param request body object{username=string,name=string,surname=string,bio=string,gender=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /user/profile [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username string        `json:"username"`
		Name     string        `json:"name"`
		Surname  string        `json:"surname"`
		Bio      string        `json:"bio"`
		Gender   models.Gender `json:"gender"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		Name:     req.Name,
		Surname:  req.Surname,
		Bio:      req.Bio,
		Gender:   req.Gender,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// UpdateProfilePicture handles PUT /user/profile-picture
// @Summary Update avatar
// @Tags user
// @Accept json
// @Produce json
// @Param request body object{url=string} true "Image URL"
// @Success 200 {object} models.User
// @Router /user/profile-picture [put]
func (s *Server) UpdateProfilePicture(c *fiber.Ctx) error {
	return s.updatePicture(c, false)
}

// UpdateCoverPicture handles PUT /user/cover-picture
// @Summary Update cover image
// @Tags user
// @Accept json
// @Produce json
// @Param request body object{url=string} true "Image URL"
// @Success 200 {object} models.User
// @Router /user/cover-picture [put]
func (s *Server) UpdateCoverPicture(c *fiber.Ctx) error {
	return s.updatePicture(c, true)
}

func (s *Server) updatePicture(c *fiber.Ctx, cover bool) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var user *models.User
	var err error
	if cover {
		user, err = s.userService.SetCoverPicture(c.UserContext(), currentUserID(c), req.URL)
	} else {
		user, err = s.userService.SetProfilePicture(c.UserContext(), currentUserID(c), req.URL)
	}
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// FollowUser handles POST /user/follow/:username
// @Summary Follow a user
// @Tags user
// @Produce json
// @Param username path string true "Username to follow"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/follow/{username} [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := s.socialService.Follow(c.UserContext(), currentUserID(c), username); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Now following " + username})
}

// UnfollowUser handles POST /user/unfollow/:username
// @Summary Unfollow a user
// @Tags user
// @Produce json
// @Param username path string true "Username to unfollow"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /user/unfollow/{username} [post]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := s.socialService.Unfollow(c.UserContext(), currentUserID(c), username); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed " + username})
}

// GetFollowers handles GET /user/followers/:username
// @Summary List a user's followers
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} models.ErrorResponse
// @Router /user/followers/{username} [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	followers, err := s.socialService.Followers(c.UserContext(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /user/following/:username
// @Summary List who a user follows
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} models.ErrorResponse
// @Router /user/following/{username} [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	following, err := s.socialService.Following(c.UserContext(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(following)
}

// AddFavorite handles POST /user/favorites/:postId
// @Summary Save a post
// @Tags user
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /user/favorites/{postId} [post]
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.userService.AddFavorite(c.UserContext(), currentUserID(c), postID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Post saved"})
}

// RemoveFavorite handles DELETE /user/favorites/:postId
// @Summary Unsave a post
// @Tags user
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Router /user/favorites/{postId} [delete]
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.userService.RemoveFavorite(c.UserContext(), currentUserID(c), postID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Post unsaved"})
}

// GetFavorites handles GET /user/favorites/:username
// @Summary List a user's saved posts
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /user/favorites/{username} [get]
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	posts, err := s.userService.FavoritesByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(posts)
}

// GetUserStats handles GET /user/stats/:username
// @Summary Profile counters
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.UserStats
// @Failure 404 {object} models.ErrorResponse
// @Router /user/stats/{username} [get]
func (s *Server) GetUserStats(c *fiber.Ctx) error {
	stats, err := s.userService.Stats(c.UserContext(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(stats)
}

// DeleteAccount handles DELETE /user/deleteAccount
// @Summary Delete own account
// @Description Removes the account and everything it touched
// @Tags user
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /user/deleteAccount [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}
