package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelframe/reelframe_backend/middleware"
	"github.com/reelframe/reelframe_backend/models"
	"github.com/reelframe/reelframe_backend/repositories"
	"github.com/reelframe/reelframe_backend/utils"
)

const (
	maxLoginAttempts   = 5
	loginAttemptWindow = 30 * time.Minute
)

type loginAttempt struct {
	count       int
	lastAttempt time.Time
}

// AuthController contains the account lifecycle: registration, login
// and logout. Registration is self-service; becoming a user grants no
// write access, only the configured admin account passes the gate.
type AuthController struct {
	users    *repositories.UserRepository
	sessions *middleware.SessionManager
	logger   *log.Logger

	mu            sync.Mutex
	loginAttempts map[string]loginAttempt
}

// NewAuthController creates a new auth controller
func NewAuthController(users *repositories.UserRepository, sessions *middleware.SessionManager) *AuthController {
	return &AuthController{
		users:         users,
		sessions:      sessions,
		logger:        log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
		loginAttempts: make(map[string]loginAttempt),
	}
}

// ShowRegister renders the registration form.
func (ac *AuthController) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register", nil)
}

// Register creates a new user with an irreversibly hashed password.
// A duplicate username sends the caller back to the form.
func (ac *AuthController) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/register")
	}
	if err := c.Validate(&req); err != nil {
		ac.logger.Printf("Registration rejected: %v", err)
		return c.Redirect(http.StatusFound, "/register")
	}

	username, err := utils.SanitizeUsername(req.Username)
	if err != nil {
		ac.logger.Printf("Registration rejected: %v", err)
		return c.Redirect(http.StatusFound, "/register")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		ac.logger.Printf("Failed to hash password: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	if _, err := ac.users.Create(ctx, username, hashedPassword); err != nil {
		if err == repositories.ErrDuplicateUsername {
			ac.logger.Printf("Registration conflict for username %q", username)
			return c.Redirect(http.StatusFound, "/register")
		}
		ac.logger.Printf("Failed to create user: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}

	return c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (ac *AuthController) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login", nil)
}

// Login verifies the submitted credentials and establishes a session
// bound to the matched user. Failures redirect back to the form with
// no distinction between a wrong password and an unknown username.
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}
	if err := c.Validate(&req); err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	username, err := utils.SanitizeUsername(req.Username)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	if ac.throttled(username) {
		ac.logger.Printf("Login throttled for username %q", username)
		return c.String(http.StatusTooManyRequests, "Too many failed login attempts. Please try again later.")
	}

	user, err := ac.users.FindByUsername(ctx, username)
	if err != nil {
		if err != repositories.ErrNotFound {
			ac.logger.Printf("Failed to look up user: %v", err)
		}
		ac.recordFailure(username)
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := utils.CheckPassword(req.Password, user.Password); err != nil {
		ac.recordFailure(username)
		return c.Redirect(http.StatusFound, "/login")
	}

	ac.clearFailures(username)

	token, err := ac.sessions.Issue(user.ID, user.Username)
	if err != nil {
		ac.logger.Printf("Failed to issue session: %v", err)
		return c.Redirect(http.StatusFound, "/error")
	}
	ac.sessions.SetCookie(c, token)

	return c.Redirect(http.StatusFound, "/admin")
}

// Logout tears down the current session. Logging out without one is
// not an error.
func (ac *AuthController) Logout(c echo.Context) error {
	if claims := ac.sessions.CurrentClaims(c); claims != nil {
		ac.sessions.Revoke(claims.TokenID, time.Unix(claims.ExpiresAt, 0))
	}
	ac.sessions.ClearCookie(c)
	return c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) throttled(username string) bool {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	attempt, exists := ac.loginAttempts[username]
	return exists && attempt.count >= maxLoginAttempts && time.Since(attempt.lastAttempt) < loginAttemptWindow
}

func (ac *AuthController) recordFailure(username string) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	attempt := ac.loginAttempts[username]
	if time.Since(attempt.lastAttempt) >= loginAttemptWindow {
		attempt.count = 0
	}
	attempt.count++
	attempt.lastAttempt = time.Now()
	ac.loginAttempts[username] = attempt
}

func (ac *AuthController) clearFailures(username string) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	delete(ac.loginAttempts, username)
}
