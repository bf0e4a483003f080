package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // sentinel error comparisons
	"log"      // server-side logging of internal failures
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls and response timestamps

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/hilgaap/inventori-api/internal/config"     // app configuration
	"github.com/hilgaap/inventori-api/internal/model"      // domain models
	"github.com/hilgaap/inventori-api/internal/repository" // sentinel storage errors
	"github.com/hilgaap/inventori-api/internal/utils"      // token issuing and password helpers
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // USER | ADMIN, anything else coerces to USER
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// userPart is the client-facing view of a user. The password hash never
// appears here.
type userPart struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// Register creates a new account. Name, email and password are required;
// the role coerces to USER unless it is exactly "ADMIN". A duplicate
// email is a validation failure, not a conflict, to match the external
// contract.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return respondErr(c, http.StatusBadRequest, "Name, email and password are required")
	}
	role := model.NormalizeRole(strings.TrimSpace(req.Role))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return respondErr(c, http.StatusBadRequest, "Email already registered")
		}
		log.Printf("[ERROR] [auth-register] create user: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		log.Printf("[ERROR] [auth-register] load user: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusCreated, "Registration successful", toUserPart(u))
}

// Login verifies the credentials and returns an access/refresh token pair
// together with the user. Unknown email and wrong password produce the
// same 401 so the endpoint does not leak which emails exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return respondErr(c, http.StatusBadRequest, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondErr(c, http.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("[ERROR] [auth-login] query user: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return respondErr(c, http.StatusUnauthorized, "Invalid credentials")
	}

	cl := utils.Claims{ID: u.ID, Email: u.Email, Role: u.Role}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, cl, h.Cfg.AccessTTLMin)
	if err != nil {
		log.Printf("[ERROR] [auth-login] issue access token: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWTSecret, cl, h.Cfg.RefreshTTLDays)
	if err != nil {
		log.Printf("[ERROR] [auth-login] issue refresh token: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}

	return respondOK(c, http.StatusOK, "Login successful", echo.Map{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         toUserPart(u),
	})
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token is not rotated and nothing is stored server-side:
// possession within the validity window is the whole credential.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return respondErr(c, http.StatusBadRequest, "Refresh token is required")
	}

	cl, err := utils.VerifyRefreshToken(h.Cfg.JWTSecret, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "Invalid refresh token")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, cl, h.Cfg.AccessTTLMin)
	if err != nil {
		log.Printf("[ERROR] [auth-refresh] issue access token: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusOK, "Access token refreshed", echo.Map{
		"accessToken": access,
	})
}
