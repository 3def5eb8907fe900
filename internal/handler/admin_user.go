package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/frocha1012/travel-reservation/internal/repository"
)

// AdminUserHandler exposes account management to administrators:
// listing accounts and deleting them.  Deleting an account revokes
// its sessions but leaves the user's reservation history in the
// ledger untouched, keyed by the username string.
type AdminUserHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAdminUserHandler(u *repository.UserRepo, t *repository.TokenRepo) *AdminUserHandler {
	return &AdminUserHandler{Users: u, Tokens: t}
}

type userListEntry struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminUserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userListEntry, 0, len(users))
	for _, u := range users {
		out = append(out, userListEntry{ID: u.ID, Username: u.Username, Role: u.Role, IsActive: u.IsActive})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// DeleteUser handles DELETE /v1/admin/users/:id.  Active sessions are
// revoked before the row goes away.
func (h *AdminUserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_ = h.Tokens.RevokeAllForUser(ctx, id)
	if err := h.Users.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
