package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/model"
)

// getUserID extracts the user_id the JWT middleware stored on the
// context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim stored by the JWT middleware, or the
// empty string when absent.
func getRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// isStaff reports whether the role may act on resources owned by other
// users.
func isStaff(role string) bool {
	return role == model.RoleAdmin || role == model.RoleManager
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
