package server

import (
	"github.com/Karan-RajKR/social-lite/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/posts
// @Summary Feed
// @Description All posts, newest first, with counts relative to the caller
// @Tags posts
// @Produce json
// @Success 200 {array} models.PostView
// @Router /posts [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.Feed(c.UserContext(), viewerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{content=string} true "Post body"
// @Success 200 {object} models.PostView
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	viewer := viewerFrom(c)
	if viewer.IsAnonymous() {
		return respondErr(c, models.ErrNotAuthenticated)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := bindJSON(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), viewer, req.Content)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// ToggleLike handles POST /api/posts/:id/like
// @Summary Toggle like
// @Description Like the post if not yet liked, otherwise unlike it
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.LikeState
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	viewer := viewerFrom(c)
	if viewer.IsAnonymous() {
		return respondErr(c, models.ErrNotAuthenticated)
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.postService.ToggleLike(c.UserContext(), viewer, postID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(state)
}
