package server

import (
	"errors"
	"log/slog"

	"github.com/Karan-RajKR/social-lite/internal/middleware"
	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	localViewer = "viewer"
	localClaims = "sessionClaims"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// ResolveViewer attaches the request's viewer to the context. Requests
// without a valid session, or whose account no longer exists, continue as
// the anonymous viewer. The claims stay attached so logout can revoke them.
func (s *Server) ResolveViewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer, claims, err := s.sessions.Resolve(c)
		if err != nil && !errors.Is(err, session.ErrNoToken) {
			middleware.Logger.DebugContext(c.UserContext(), "ignoring session token", slog.String("reason", err.Error()))
		}
		if claims != nil {
			c.Locals(localClaims, claims)
			user, err := s.userRepo.GetByID(c.UserContext(), viewer.ID)
			switch {
			case err == nil:
				viewer = models.NewViewer(user)
				c.Locals("userID", viewer.ID)
				c.SetUserContext(middleware.WithUserID(c.UserContext(), viewer.ID))
			case models.IsCode(err, models.CodeNotFound):
				middleware.Logger.DebugContext(c.UserContext(), "session user no longer exists", slog.Uint64("user_id", uint64(viewer.ID)))
				viewer = models.Anonymous()
			default:
				return respondErr(c, err)
			}
		}
		c.Locals(localViewer, viewer)
		return c.Next()
	}
}

// viewerFrom returns the viewer set by ResolveViewer.
func viewerFrom(c *fiber.Ctx) models.Viewer {
	if v, ok := c.Locals(localViewer).(models.Viewer); ok {
		return v
	}
	return models.Anonymous()
}

func claimsFrom(c *fiber.Ctx) *session.Claims {
	claims, _ := c.Locals(localClaims).(*session.Claims)
	return claims
}

// respondErr maps err onto its status. Store failures are logged here because
// their cause is never sent to the client.
func respondErr(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}

// bindJSON parses the request body, writing a 400 on failure.
func bindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

