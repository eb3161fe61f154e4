// middleware/session.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionCookie is the name of the HttpOnly cookie carrying the signed
// session token.
const SessionCookie = "rf_session"

// sessionTTL bounds both the token lifetime and how long a revoked
// token id has to be remembered.
const sessionTTL = 30 * 24 * time.Hour

// SessionClaims for the session token
type SessionClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	TokenID  string `json:"jti"`
	jwt.StandardClaims
}

// Valid implements the Claims interface.
func (c SessionClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// SessionManager issues, verifies and revokes the signed cookie
// sessions. There are only two authorization states: the session user
// is the configured admin, or it is not.
type SessionManager struct {
	secret  []byte
	adminID primitive.ObjectID

	// redis holds the revocation list when available; revoked is the
	// in-process fallback.
	redis   *redis.Client
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewSessionManager creates a session manager. redisClient may be nil.
func NewSessionManager(secret string, adminID primitive.ObjectID, redisClient *redis.Client) *SessionManager {
	return &SessionManager{
		secret:  []byte(secret),
		adminID: adminID,
		redis:   redisClient,
		revoked: make(map[string]time.Time),
	}
}

// Issue creates a signed session token for the given user.
func (m *SessionManager) Issue(userID primitive.ObjectID, username string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   userID.Hex(),
		Username: username,
		TokenID:  uuid.NewString(),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(sessionTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a session token's signature, expiry and revocation
// status and returns its claims.
func (m *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if m.isRevoked(claims.TokenID) {
		return nil, errors.New("session has been revoked")
	}
	return claims, nil
}

// Revoke invalidates a token id until the token would have expired
// anyway. Revoking an already-revoked or unknown id is harmless, which
// keeps logout idempotent.
func (m *SessionManager) Revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	if m.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.redis.Set(ctx, revocationKey(tokenID), "1", ttl).Err(); err == nil {
			return
		}
		// fall through to the in-memory list on Redis failure
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = expiresAt
	// Purge expired entries while we hold the lock.
	now := time.Now()
	for id, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, id)
		}
	}
}

func (m *SessionManager) isRevoked(tokenID string) bool {
	if tokenID == "" {
		return false
	}

	if m.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if n, err := m.redis.Exists(ctx, revocationKey(tokenID)).Result(); err == nil && n > 0 {
			return true
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	exp, exists := m.revoked[tokenID]
	return exists && time.Now().Before(exp)
}

func revocationKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

// SetCookie attaches the session token to the response.
func (m *SessionManager) SetCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentClaims returns the verified claims of the request's session
// cookie, or nil when there is no usable session.
func (m *SessionManager) CurrentClaims(c echo.Context) *SessionClaims {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := m.Parse(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// RequireAdmin invokes the handler only when the session belongs to
// the configured admin account; every other caller, anonymous or
// authenticated, is redirected to the login page without detail.
func (m *SessionManager) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := m.CurrentClaims(c)
			if claims == nil || claims.UserID != m.adminID.Hex() {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set("userId", claims.UserID)
			c.Set("username", claims.Username)
			return next(c)
		}
	}
}
