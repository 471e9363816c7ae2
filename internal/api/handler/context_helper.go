package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// MustGetUserID extracts the authenticated user id injected by the JWT
// middleware. On failure it writes a 401 and returns ok=false; callers should
// return immediately.
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "not authenticated")
		return 0, false
	}
	return id, true
}

// MustGetRole extracts the authenticated role.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// parseIDParam parses a numeric :id style path parameter. On failure it
// writes a 400 and returns ok=false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
