package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/join-board-api/internal/constants"
	apierrors "github.com/yukikurage/join-board-api/internal/errors"
	"github.com/yukikurage/join-board-api/internal/utils"
)

// RequireResourceID parses the numeric ":id" path parameter.
// Anything that cannot be an identity answers 404, the same as an unknown one.
func RequireResourceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c.Param("id"))
		if !ok {
			apierrors.NotFound(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyResource, id)
		c.Next()
	}
}

// GetResourceID retrieves the ID parsed by RequireResourceID
func GetResourceID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyResource)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
