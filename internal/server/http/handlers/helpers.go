package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/perkmart/perkmart/internal/server/http/middleware"
)

// CurrentUserID returns the authenticated user identifier stored by the auth
// middleware. Routes using it must be registered behind AuthRequired.
func CurrentUserID(c *gin.Context) int64 {
	v, _ := c.Get(middleware.UserIDContextKey)
	id, _ := v.(int64)
	return id
}
