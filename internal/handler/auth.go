package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-blog-api/internal/config"
	"github.com/iliyamo/movie-blog-api/internal/model"
	"github.com/iliyamo/movie-blog-api/internal/repository"
	"github.com/iliyamo/movie-blog-api/internal/utils"
)

// UserStore is the credential store the auth endpoints depend on. It is
// satisfied by *repository.UserRepo; tests substitute an in-memory fake.
// Create must be atomic with respect to username uniqueness and return
// repository.ErrUsernameExists on conflict.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account. Uniqueness of the username rides entirely
// on the store's atomic insert; there is no lookup beforehand, so two
// concurrent registrations of the same name cannot both pass a check.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Username, hash); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already taken"})
		}
		log.Printf("register: create user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "user registered"})
}

// Login verifies credentials and returns a fresh access token. An unknown
// username and a wrong password produce byte-identical responses so the
// endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Printf("login: query user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	ok, err := utils.VerifyPassword(u.PasswordHash, req.Password)
	if err != nil {
		// Stored hash is corrupted; that's a server problem, not a bad
		// password.
		log.Printf("login: verify password for user %d: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		log.Printf("login: issue token for user %d: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":   access.Token,
		"expires": access.Exp,
	})
}

// Me is a simple protected endpoint that echoes the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		log.Printf("me: query user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}
