package middleware

import "github.com/gin-gonic/gin"

const exposeErrorsKey = "expose_internal_errors"

// ExposeErrors marks whether 500 responses may carry the underlying error
// message. It is enabled outside production.
func ExposeErrors(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(exposeErrorsKey, expose)
		c.Next()
	}
}

// InternalErrorsExposed reports the flag set by ExposeErrors
func InternalErrorsExposed(c *gin.Context) bool {
	return c.GetBool(exposeErrorsKey)
}
