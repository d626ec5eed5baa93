// Package session issues and resolves signed session tokens. It turns a
// request into a models.Viewer; the rest of the app never sees tokens.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Karan-RajKR/social-lite/internal/cache"
	"github.com/Karan-RajKR/social-lite/internal/middleware"
	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	issuer   = "social-lite-api"
	audience = "social-lite-client"
)

var (
	// ErrNoToken means the request carried neither a session cookie nor a bearer token.
	ErrNoToken = errors.New("no session token")
	// ErrRevoked means the token was logged out.
	ErrRevoked = errors.New("session revoked")
)

// Claims is the token payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return uint(id), nil
}

// Config controls token lifetime and cookie attributes.
type Config struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	SecureCookie bool
}

// Manager signs, verifies and revokes session tokens.
type Manager struct {
	cfg   Config
	redis *redis.Client
	now   func() time.Time
}

// NewManager returns a Manager. rdb may be nil, in which case logout only
// clears the cookie and bearer tokens stay valid until they expire.
func NewManager(cfg Config, rdb *redis.Client) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "social_lite_session"
	}
	return &Manager{cfg: cfg, redis: rdb, now: time.Now}
}

// Issue signs a token for user.
func (m *Manager) Issue(user *models.User) (string, *Claims, error) {
	if m.cfg.Secret == "" {
		return "", nil, fmt.Errorf("session secret not configured")
	}

	now := m.now()
	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Parse verifies signature, issuer, audience, expiry and revocation.
func (m *Manager) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return []byte(m.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}

	revoked, err := m.isRevoked(ctx, claims.ID)
	if err != nil {
		// Treated as not revoked.
		middleware.Logger.WarnContext(ctx, "session revocation check failed", slog.String("error", err.Error()))
	}
	if revoked {
		return nil, ErrRevoked
	}
	return claims, nil
}

func (m *Manager) isRevoked(ctx context.Context, jti string) (bool, error) {
	if m.redis == nil || jti == "" {
		return false, nil
	}
	n, err := m.redis.Exists(ctx, cache.RevokedSessionKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke blacklists the token until its natural expiry.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if m.redis == nil || claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Sub(m.now()); remaining > 0 {
			ttl = remaining
		}
	}
	if err := m.redis.Set(ctx, cache.RevokedSessionKey(claims.ID), "1", ttl).Err(); err != nil {
		return err
	}
	observability.SessionsRevoked.Inc()
	return nil
}

// TokenFromRequest reads the session cookie, then a Bearer Authorization header.
func (m *Manager) TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(m.cfg.CookieName); token != "" {
		return token
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Resolve returns the request's viewer. A missing, invalid, expired or
// revoked token yields the anonymous viewer and a non-nil error.
func (m *Manager) Resolve(c *fiber.Ctx) (models.Viewer, *Claims, error) {
	token := m.TokenFromRequest(c)
	if token == "" {
		return models.Anonymous(), nil, ErrNoToken
	}
	claims, err := m.Parse(c.UserContext(), token)
	if err != nil {
		return models.Anonymous(), nil, err
	}
	id, _ := claims.UserID()
	return models.Viewer{ID: id, Username: claims.Username}, claims, nil
}

// SetCookie stores token in an httpOnly cookie that expires with the token.
func (m *Manager) SetCookie(c *fiber.Ctx, token string, claims *Claims) {
	cookie := &fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if claims != nil && claims.ExpiresAt != nil {
		cookie.Expires = claims.ExpiresAt.Time
	}
	c.Cookie(cookie)
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
