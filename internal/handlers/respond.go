package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/employee-management-api/internal/errors"
	"github.com/yukikurage/employee-management-api/internal/services"
)

// respondValidationError writes a 400 with per-field details when err is a
// validation error, and reports whether it did.
func respondValidationError(c *gin.Context, err error) bool {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	apierrors.BadRequestWithDetails(c, verr.Message, verr.Fields)
	return true
}

// respondInternalError logs the cause and hides it from the client.
func respondInternalError(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	apierrors.InternalError(c, "")
}
