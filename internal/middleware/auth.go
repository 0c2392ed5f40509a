package middleware

import (
	"errors"
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/employee-management-api/internal/constants"
	apierrors "github.com/yukikurage/employee-management-api/internal/errors"
	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/repository"
	"gorm.io/gorm"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(constants.ContextKeyUserID).(string)

		if !ok || userID == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// LoadAccount resolves the session's account and stores it in the context.
// Sessions whose account is gone or no longer approved are cleared.
func LoadAccount(accounts repository.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		account, err := accounts.FindByID(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.ErrorContext(c.Request.Context(), "failed to load session account", "user_id", userID, "error", err)
			apierrors.InternalError(c, "")
			return
		}
		if err != nil || account.Status != models.AccountStatusApproved {
			session := sessions.Default(c)
			session.Clear()
			_ = session.Save()
			apierrors.Unauthorized(c, "Session is no longer valid")
			return
		}

		c.Set(constants.ContextKeyAccount, account)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// GetAccount retrieves the account loaded by LoadAccount
func GetAccount(c *gin.Context) (*models.Account, bool) {
	value, exists := c.Get(constants.ContextKeyAccount)
	if !exists {
		return nil, false
	}
	account, ok := value.(*models.Account)
	return account, ok
}
