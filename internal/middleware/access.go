package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/employee-management-api/internal/errors"
)

// RequireAdmin lets only admin accounts through. Must run after LoadAccount.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := GetAccount(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if !account.IsAdmin() {
			apierrors.Forbidden(c, "Admin access required")
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin lets through admins and the account whose id is in the
// named path parameter.
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := GetAccount(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if !account.IsAdmin() && account.ID != c.Param(param) {
			apierrors.Forbidden(c, "")
			return
		}
		c.Next()
	}
}

// RequireSelf lets through only the account named by the path parameter.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := GetAccount(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if account.ID != c.Param(param) {
			apierrors.Forbidden(c, "You can only modify your own account")
			return
		}
		c.Next()
	}
}
