package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/:username
// @Summary User profile
// @Description Profile with post and follow counts relative to the caller
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.ProfileView
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.Profile(c.UserContext(), c.Params("username"), viewerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(profile)
}

// GetUserPosts handles GET /api/users/:username/posts
// @Summary User posts
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.PostView
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	posts, err := s.feedService.UserPosts(c.UserContext(), c.Params("username"), viewerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(posts)
}

// ToggleFollow handles POST /api/users/:username/follow
// @Summary Toggle follow
// @Description Follow the user if not yet following, otherwise unfollow
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.FollowState
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/follow [post]
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	state, err := s.followService.ToggleFollow(c.UserContext(), viewerFrom(c), c.Params("username"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(state)
}
