package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// identityKey renders the authenticated user for cache and rate-limit
// key strategies.  Anonymous requests share the "anon" bucket.
func identityKey(c echo.Context) string {
	if v, ok := c.Get("user_id").(uint64); ok && v != 0 {
		return strconv.FormatUint(v, 10)
	}
	return "anon"
}
