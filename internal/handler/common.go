package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/frocha1012/travel-reservation/internal/engine"
)

// username extracts the authenticated username stored in the context
// by the JWT middleware.  An empty result means the middleware did not
// run or the token was malformed; callers respond 401.
func username(c echo.Context) string {
	name, _ := c.Get("username").(string)
	return name
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// engineError maps the engine's sentinel errors onto HTTP responses so
// every handler reports failures the same way.  Persistence failures
// are logged server-side by the engine wrapper; the client just sees
// that the operation did not commit.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, engine.ErrDuplicateID):
		return c.JSON(http.StatusConflict, echo.Map{"error": "duplicate id"})
	case errors.Is(err, engine.ErrInsufficientCapacity):
		return c.JSON(http.StatusConflict, echo.Map{"error": "no capacity left"})
	case errors.Is(err, engine.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
	case errors.Is(err, engine.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the reservation owner"})
	case errors.Is(err, engine.ErrPersistence):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation not durably committed"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
