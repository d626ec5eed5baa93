package server

import (
	"log/slog"

	"github.com/Karan-RajKR/social-lite/internal/middleware"
	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/service"

	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register
// @Summary Register
// @Description Create an account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Registration request"
// @Success 200 {object} object{message=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return respondErr(c, err)
	}

	if err := s.startSession(c, user); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles POST /api/login
// @Summary Log in
// @Description Verify credentials and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{message=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondErr(c, err)
	}

	if err := s.startSession(c, user); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"user":    user,
	})
}

func (s *Server) startSession(c *fiber.Ctx, user *models.User) error {
	token, claims, err := s.sessions.Issue(user)
	if err != nil {
		return models.NewInternalError(err)
	}
	s.sessions.SetCookie(c, token, claims)
	return nil
}

// Logout handles POST /api/logout
// @Summary Log out
// @Description Revoke the current session and clear the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if claims := claimsFrom(c); claims != nil {
		if err := s.sessions.Revoke(c.UserContext(), claims); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to revoke session", slog.String("error", err.Error()))
		}
	}
	s.sessions.ClearCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// GetMe handles GET /api/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} object{user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Router /me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.Me(c.UserContext(), viewerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateMe handles PUT /api/me
// @Summary Update profile
// @Description Edit the current user's bio and avatar
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{bio=string,avatar=string} true "Profile fields"
// @Success 200 {object} object{user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /me [put]
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	viewer := viewerFrom(c)
	if viewer.IsAnonymous() {
		return respondErr(c, models.ErrNotAuthenticated)
	}

	var req struct {
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := bindJSON(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), viewer, service.UpdateProfileInput{
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}
