package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hilgaap/inventori-api/internal/config"
	"github.com/hilgaap/inventori-api/internal/model"
	"github.com/hilgaap/inventori-api/internal/repository"
)

// UserHandler implements the admin-only user management endpoints. Every
// route is registered behind JWTAuth plus RequireRole(ADMIN), so the
// handlers themselves only deal with validation and storage mapping.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, u UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type userUpdateReq struct {
	ID    uint64  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}
type userDeleteReq struct {
	ID uint64 `json:"id"`
}

// List returns a page of users ordered by id, password field excluded.
func (h *UserHandler) List(c echo.Context) error {
	page, limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx, offset, limit)
	if err != nil {
		log.Printf("[ERROR] [users-list] query: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	total, err := h.Users.Count(ctx)
	if err != nil {
		log.Printf("[ERROR] [users-list] count: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}

	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPart(u))
	}
	return respondPage(c, "Users fetched", out, Pagination{
		Page: page, Limit: limit, Total: total, TotalPages: totalPages(total, limit),
	})
}

// Create adds a user on behalf of an admin. Same validation and role
// coercion as self-registration.
func (h *UserHandler) Create(c echo.Context) error {
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
		log.Printf("[ERROR] [users-create] insert: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		log.Printf("[ERROR] [users-create] load: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusCreated, "User created", toUserPart(u))
}

// Update applies a partial update addressed by the id in the body. A
// provided role goes through the same coercion as on create, so the role
// column only ever holds USER or ADMIN.
func (h *UserHandler) Update(c echo.Context) error {
	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.ID == 0 {
		return respondErr(c, http.StatusBadRequest, "ID is required")
	}
	if req.Role != nil {
		coerced := model.NormalizeRole(strings.TrimSpace(*req.Role))
		req.Role = &coerced
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Update(ctx, req.ID, req.Name, req.Email, req.Role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return respondErr(c, http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrEmailExists):
			return respondErr(c, http.StatusBadRequest, "Email already registered")
		}
		log.Printf("[ERROR] [users-update] update: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}

	u, err := h.Users.GetByID(ctx, req.ID)
	if err != nil {
		log.Printf("[ERROR] [users-update] load: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusOK, "User updated", toUserPart(u))
}

// Delete removes a user addressed by the id in the body.
func (h *UserHandler) Delete(c echo.Context) error {
	var req userDeleteReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.ID == 0 {
		return respondErr(c, http.StatusBadRequest, "ID is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondErr(c, http.StatusNotFound, "User not found")
		}
		log.Printf("[ERROR] [users-delete] delete: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusOK, "User deleted", nil)
}
